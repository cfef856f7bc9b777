package repository

import (
	"testing"

	"team-builder-backend/internal/database/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderMembers(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("keeps stored member order", func(t *testing.T) {
		got := orderMembers(teamLookup{
			ID:      primitive.NewObjectID(),
			Name:    "core",
			Members: []primitive.ObjectID{b, a, c},
			MemberDocs: []models.User{
				{ID: a, FirstName: "Ann"},
				{ID: b, FirstName: "Bob"},
				{ID: c, FirstName: "Cid"},
			},
		})

		assert.Equal(t, "core", got.Name)
		if assert.Len(t, got.Members, 3) {
			assert.Equal(t, "Bob", got.Members[0].FirstName)
			assert.Equal(t, "Ann", got.Members[1].FirstName)
			assert.Equal(t, "Cid", got.Members[2].FirstName)
		}
	})

	t.Run("drops dangling references", func(t *testing.T) {
		got := orderMembers(teamLookup{
			Members:    []primitive.ObjectID{a, b},
			MemberDocs: []models.User{{ID: b, FirstName: "Bob"}},
		})

		if assert.Len(t, got.Members, 1) {
			assert.Equal(t, b, got.Members[0].ID)
		}
	})

	t.Run("empty team renders an empty list", func(t *testing.T) {
		got := orderMembers(teamLookup{})
		assert.NotNil(t, got.Members)
		assert.Empty(t, got.Members)
	})
}
