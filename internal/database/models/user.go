package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a person that can be assigned to a team.
// ID is the store identity; UserID is the external numeric id imported with the record.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    int                `bson:"id" json:"id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	Gender    Gender             `bson:"gender,omitempty" json:"gender,omitempty"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Domain    string             `bson:"domain" json:"domain"`
	// Available is nil until the record is explicitly marked
	Available *bool `bson:"available,omitempty" json:"available,omitempty"`
}

// CollectionName returns the collection name for User
func (User) CollectionName() string {
	return "users"
}

// GroupValue is one distinct field value produced by a $group stage
type GroupValue struct {
	Value interface{} `bson:"_id" json:"_id"`
}
