package handlers

import (
	"encoding/json"
	"net/http"

	"team-builder-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Filters handles GET /filters
// @Summary Distinct filter values
// @Description Distinct domains and genders present across all users, sorted ascending
// @Tags users
// @Produce json
// @Success 200 {object} service.FiltersResponse
// @Failure 500 {object} ErrorResponse
// @Router /filters [get]
func (h *UserHandler) Filters(c *gin.Context) {
	resp, err := h.userService.Filters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /users
// @Summary List users
// @Description Paginated users (20 per page). search is required; an empty search lets domain, gender
// @Description and any other equality filters decide. A non-empty search matches first or last name.
// @Tags users
// @Produce json
// @Param search query string true "Name substring, may be empty"
// @Param page query int false "Page number" default(1)
// @Param domain query []string false "Domain filter" collectionFormat(multi)
// @Param gender query []string false "Gender filter" collectionFormat(multi)
// @Success 200 {object} service.UserListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.userService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	if resp.Empty {
		c.JSON(http.StatusOK, gin.H{"users": resp.Users})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /user/:uid
// @Summary Get user
// @Tags users
// @Produce json
// @Param uid path string true "User store id"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /user/{uid} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := service.ParseObjectID("uid", c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /user/:uid
// @Summary Update user
// @Description Applies the fields present in updateData. Unknown fields are rejected.
// @Tags users
// @Accept json
// @Produce json
// @Param uid path string true "User store id"
// @Param body body service.UpdateUserEnvelope true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /user/{uid} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := service.ParseObjectID("uid", c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body service.UpdateUserEnvelope
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, body.UpdateData)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /user/:uid
// @Summary Delete user
// @Description Team member references to the user are left in place.
// @Tags users
// @Produce json
// @Param uid path string true "User store id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /user/{uid} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := service.ParseObjectID("uid", c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "user deleted"})
}

// Login handles POST /login
// @Summary Look up a user by email
// @Description No credential check is performed.
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Email"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// MarkUnavailable handles PATCH /addMember/:uid
// @Summary Mark a user unavailable
// @Description Sets available=false. Responds with null when no user has the id.
// @Tags users
// @Produce json
// @Param uid path string true "User store id"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /addMember/{uid} [patch]
func (h *UserHandler) MarkUnavailable(c *gin.Context) {
	id, err := service.ParseObjectID("uid", c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.MarkUnavailable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
