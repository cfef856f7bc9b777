package repository

import (
	"context"

	"team-builder-backend/internal/database/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.User, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*models.User, error)
	SnapshotAvailability(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	SetAvailabilityMany(ctx context.Context, ids []primitive.ObjectID, available bool) (int64, error)
	RestoreAvailability(ctx context.Context, snapshot []models.User) error
	GroupBy(ctx context.Context, field string) ([]models.GroupValue, error)
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *models.Team) error
	GetAll(ctx context.Context) ([]models.Team, error)
	GetWithMembers(ctx context.Context, id primitive.ObjectID) (*models.TeamWithMembers, error)
}
