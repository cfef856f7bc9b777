package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/logger"
	"team-builder-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamService handles business logic for teams
type TeamService struct {
	repo      repository.TeamRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(repo repository.TeamRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{
		repo:      repo,
		userRepo:  userRepo,
		validator: validator,
	}
}

// CreateTeamRequest is the POST /team body.
// Members stays raw so a non-array value can be reported as a format error.
type CreateTeamRequest struct {
	Name    string          `json:"name" validate:"max=100"`
	Members json.RawMessage `json:"members" swaggertype:"array,string"`
}

func (r *CreateTeamRequest) memberIDs() ([]primitive.ObjectID, error) {
	if len(r.Members) == 0 {
		return nil, apperrors.ErrInvalidMembers
	}

	var hexes []string
	if err := json.Unmarshal(r.Members, &hexes); err != nil || hexes == nil {
		return nil, apperrors.ErrInvalidMembers
	}

	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, apperrors.ErrInvalidMembers
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create marks the members unavailable and stores the team.
// If storing the team fails, members get their previous availability back.
func (s *TeamService) Create(ctx context.Context, req *CreateTeamRequest) (*models.Team, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	members, err := req.memberIDs()
	if err != nil {
		return nil, err
	}

	snapshot, err := s.userRepo.SnapshotAvailability(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMarkMembersFailed, err)
	}

	if _, err := s.userRepo.SetAvailabilityMany(ctx, members, false); err != nil {
		return nil, s.rollback(ctx, snapshot, fmt.Errorf("%w: %w", apperrors.ErrMarkMembersFailed, err))
	}

	team := &models.Team{Name: req.Name, Members: members}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, s.rollback(ctx, snapshot, fmt.Errorf("failed to create team: %w", err))
	}
	return team, nil
}

// rollback restores availability from snapshot and returns cause, joined with the
// restore failure if there was one
func (s *TeamService) rollback(ctx context.Context, snapshot []models.User, cause error) error {
	restoreCtx := context.WithoutCancel(ctx)
	if err := s.userRepo.RestoreAvailability(restoreCtx, snapshot); err != nil {
		logger.WithContext(ctx).WithError(err).
			WithField("members", len(snapshot)).
			Error("Failed to restore member availability")
		return errors.Join(cause, fmt.Errorf("%w: %w", apperrors.ErrTeamRollbackFailed, err))
	}
	logger.WithContext(ctx).WithField("members", len(snapshot)).
		Warn("Restored member availability after team creation failure")
	return cause
}

// GetAll retrieves every team
func (s *TeamService) GetAll(ctx context.Context) ([]models.Team, error) {
	teams, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

// GetByID retrieves a team with its members expanded
func (s *TeamService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamWithMembers, error) {
	return s.repo.GetWithMembers(ctx, id)
}
