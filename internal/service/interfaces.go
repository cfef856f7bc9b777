package service

import (
	"context"
	"net/url"

	"team-builder-backend/internal/database/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	List(ctx context.Context, params url.Values) (*UserListResponse, error)
	Filters(ctx context.Context) (*FiltersResponse, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
	MarkUnavailable(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// TeamServiceInterface defines the interface for team service
type TeamServiceInterface interface {
	Create(ctx context.Context, req *CreateTeamRequest) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamWithMembers, error)
}
