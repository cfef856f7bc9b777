package service

import (
	"context"
	"fmt"
	"net/url"

	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/filter"
	"team-builder-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles business logic for users
type UserService struct {
	repo      repository.UserRepositoryInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		validator: validator,
	}
}

// UpdateUserRequest lists the user fields a client may change.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	UserID    *int    `json:"id"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Avatar    *string `json:"avatar"`
	Domain    *string `json:"domain" validate:"omitempty,max=100"`
	Available *bool   `json:"available"`
}

// UpdateUserEnvelope is the PUT /user/:uid body
type UpdateUserEnvelope struct {
	UpdateData *UpdateUserRequest `json:"updateData"`
}

// LoginRequest is the POST /login body
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserListResponse is one page of users.
// Empty is set for non-positive pages, which are answered without a store query.
type UserListResponse struct {
	Users     []models.User `json:"users"`
	PageCount int           `json:"pageCount"`
	Page      int           `json:"page"`
	Empty     bool          `json:"-"`
}

// FiltersResponse holds the distinct domains and genders present in the store
type FiltersResponse struct {
	UniqueDomains []models.GroupValue `json:"uniqueDomains"`
	UniqueGenders []models.GroupValue `json:"uniqueGenders"`
}

// List returns one page of users matching the query parameters
func (s *UserService) List(ctx context.Context, params url.Values) (*UserListResponse, error) {
	q, err := filter.BuildUserQuery(params)
	if err != nil {
		return nil, err
	}
	if q.Empty {
		return &UserListResponse{Users: []models.User{}, Empty: true}, nil
	}

	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.Find(ctx, q.Filter, q.Skip(), int64(q.PageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return &UserListResponse{
		Users:     users,
		PageCount: q.PageCount(total),
		Page:      q.Page,
	}, nil
}

// Filters returns the distinct domain and gender values
func (s *UserService) Filters(ctx context.Context) (*FiltersResponse, error) {
	domains, err := s.repo.GroupBy(ctx, "domain")
	if err != nil {
		return nil, fmt.Errorf("failed to collect domains: %w", err)
	}
	genders, err := s.repo.GroupBy(ctx, "gender")
	if err != nil {
		return nil, fmt.Errorf("failed to collect genders: %w", err)
	}
	return &FiltersResponse{UniqueDomains: domains, UniqueGenders: genders}, nil
}

// GetByID retrieves a user by store id
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies the non-nil fields of req to the user
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateUserRequest) (*models.User, error) {
	if req == nil {
		return nil, apperrors.ErrEmptyUpdate
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	set := req.fields()
	if len(set) == 0 {
		return nil, apperrors.ErrEmptyUpdate
	}
	return s.repo.Update(ctx, id, set)
}

func (r *UpdateUserRequest) fields() bson.M {
	set := bson.M{}
	if r.UserID != nil {
		set["id"] = *r.UserID
	}
	if r.FirstName != nil {
		set["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		set["last_name"] = *r.LastName
	}
	if r.Email != nil {
		set["email"] = *r.Email
	}
	if r.Gender != nil {
		set["gender"] = *r.Gender
	}
	if r.Avatar != nil {
		set["avatar"] = *r.Avatar
	}
	if r.Domain != nil {
		set["domain"] = *r.Domain
	}
	if r.Available != nil {
		set["available"] = *r.Available
	}
	return set
}

// Delete removes a user. Teams that reference it are left as they are.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

// Login looks a user up by exact email
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	return s.repo.GetByEmail(ctx, req.Email)
}

// MarkUnavailable sets available=false on a user. A missing user yields (nil, nil).
func (s *UserService) MarkUnavailable(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.SetAvailability(ctx, id, false)
}
