package repository

import (
	"context"
	"fmt"
	"time"

	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TeamRepository handles store operations for teams
type TeamRepository struct {
	coll      *mongo.Collection
	usersName string
	timeout   time.Duration
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *mongo.Database, timeout time.Duration) *TeamRepository {
	return &TeamRepository{
		coll:      db.Collection(models.Team{}.CollectionName()),
		usersName: models.User{}.CollectionName(),
		timeout:   timeout,
	}
}

// Create inserts a team and sets its store id
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if team.Members == nil {
		team.Members = []primitive.ObjectID{}
	}

	res, err := r.coll.InsertOne(ctx, team)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		team.ID = id
	}
	return nil
}

// GetAll retrieves every team
func (r *TeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find teams: %w", err)
	}

	teams := make([]models.Team, 0)
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	return teams, nil
}

type teamLookup struct {
	ID         primitive.ObjectID   `bson:"_id"`
	Name       string               `bson:"name"`
	Members    []primitive.ObjectID `bson:"members"`
	MemberDocs []models.User        `bson:"member_docs"`
}

// GetWithMembers retrieves a team with its member ids joined to user documents.
// Members keep the stored order; ids without a user document are dropped.
func (r *TeamRepository) GetWithMembers(ctx context.Context, id primitive.ObjectID) (*models.TeamWithMembers, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: r.usersName},
			{Key: "localField", Value: "members"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "member_docs"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("lookup team members: %w", err)
	}

	var found []teamLookup
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode team: %w", err)
	}
	if len(found) == 0 {
		return nil, apperrors.ErrTeamNotFound
	}

	return orderMembers(found[0]), nil
}

func orderMembers(t teamLookup) *models.TeamWithMembers {
	byID := make(map[primitive.ObjectID]models.User, len(t.MemberDocs))
	for _, u := range t.MemberDocs {
		byID[u.ID] = u
	}

	members := make([]models.User, 0, len(t.Members))
	for _, id := range t.Members {
		if u, ok := byID[id]; ok {
			members = append(members, u)
		}
	}

	return &models.TeamWithMembers{
		ID:      t.ID,
		Name:    t.Name,
		Members: members,
	}
}
