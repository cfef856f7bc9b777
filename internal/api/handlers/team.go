package handlers

import (
	"net/http"

	"team-builder-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for team operations
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam handles POST /team
// @Summary Create team
// @Description Marks every member unavailable, then stores the team. Members get their
// @Description previous availability back if the team cannot be stored.
// @Tags teams
// @Accept json
// @Produce json
// @Param body body service.CreateTeamRequest true "Team name and member ids"
// @Success 201 {object} models.Team
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /team [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req service.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// ListTeams handles GET /teams
// @Summary List teams
// @Tags teams
// @Produce json
// @Success 200 {array} models.Team
// @Failure 500 {object} ErrorResponse
// @Router /teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetTeam handles GET /team/:id
// @Summary Get team with members
// @Description Members are full user records in stored order; ids without a user are skipped.
// @Tags teams
// @Produce json
// @Param id path string true "Team store id"
// @Success 200 {object} models.TeamWithMembers
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /team/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := service.ParseObjectID("id", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	team, err := h.teamService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}
