package testutils

import (
	"fmt"

	"team-builder-backend/internal/database/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserFactory provides methods to create test User data
type UserFactory struct {
	seq int
}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values and a unique email
func (f *UserFactory) Create() *models.User {
	f.seq++
	return &models.User{
		ID:        primitive.NewObjectID(),
		UserID:    f.seq,
		FirstName: "John",
		LastName:  "Doe",
		Email:     fmt.Sprintf("john.doe+%s@example.com", uuid.NewString()[:8]),
		Gender:    models.GenderMale,
		Avatar:    "https://robohash.org/john.png",
		Domain:    "Sales",
	}
}

// WithName sets custom first and last names
func (f *UserFactory) WithName(first, last string) *models.User {
	u := f.Create()
	u.FirstName = first
	u.LastName = last
	return u
}

// WithDomainAndGender sets custom domain and gender
func (f *UserFactory) WithDomainAndGender(domain string, gender models.Gender) *models.User {
	u := f.Create()
	u.Domain = domain
	u.Gender = gender
	return u
}

// WithAvailability sets the availability flag
func (f *UserFactory) WithAvailability(available bool) *models.User {
	u := f.Create()
	u.Available = &available
	return u
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with no members
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		Name:    "Test Team",
		Members: []primitive.ObjectID{},
	}
}

// WithMembers creates a test Team referencing the given users
func (f *TeamFactory) WithMembers(name string, users ...*models.User) *models.Team {
	t := f.Create()
	t.Name = name
	for _, u := range users {
		t.Members = append(t.Members, u.ID)
	}
	return t
}

// FactorySet groups all factories for convenient access in tests
type FactorySet struct {
	User *UserFactory
	Team *TeamFactory
}

// NewFactorySet creates a new FactorySet with all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User: NewUserFactory(),
		Team: NewTeamFactory(),
	}
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
