package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository handles store operations for users
type UserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, timeout time.Duration) *UserRepository {
	return &UserRepository{
		coll:    db.Collection(models.User{}.CollectionName()),
		timeout: timeout,
	}
}

// Find returns one page of users matching filter
func (r *UserRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// Count returns the number of users matching filter
func (r *UserRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// GetByID retrieves a user by store id
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail retrieves a user by exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Update applies set to the user and returns the updated document
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	user, err := r.findOneAndSet(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Delete removes a user by store id
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetAvailability sets the availability flag of one user. A missing user yields (nil, nil).
func (r *UserRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*models.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{"available": available})
}

func (r *UserRepository) findOneAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// SnapshotAvailability returns id and availability of the given users that are not
// already marked unavailable
func (r *UserRepository) SnapshotAvailability(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{
		"_id":       bson.M{"$in": ids},
		"available": bson.M{"$ne": false},
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "available": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("snapshot availability: %w", err)
	}

	users := make([]models.User, 0, len(ids))
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	return users, nil
}

// SetAvailabilityMany sets the availability flag on every listed user and returns
// how many users matched
func (r *UserRepository) SetAvailabilityMany(ctx context.Context, ids []primitive.ObjectID, available bool) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"available": available}},
	)
	if err != nil {
		return 0, fmt.Errorf("update availability: %w", err)
	}
	return res.MatchedCount, nil
}

// RestoreAvailability writes back availability values captured by SnapshotAvailability.
// Users that had no flag get it removed again.
func (r *UserRepository) RestoreAvailability(ctx context.Context, snapshot []models.User) error {
	if len(snapshot) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(snapshot))
	for _, u := range snapshot {
		update := bson.M{"$unset": bson.M{"available": ""}}
		if u.Available != nil {
			update = bson.M{"$set": bson.M{"available": *u.Available}}
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": u.ID}).
			SetUpdate(update))
	}

	if _, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("restore availability: %w", err)
	}
	return nil
}

// GroupBy returns the distinct values of field across all users, sorted ascending
func (r *UserRepository) GroupBy(ctx context.Context, field string) ([]models.GroupValue, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$" + field}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group users by %s: %w", field, err)
	}

	values := make([]models.GroupValue, 0)
	if err := cursor.All(ctx, &values); err != nil {
		return nil, fmt.Errorf("decode %s groups: %w", field, err)
	}
	return values, nil
}
