package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team references its members by user id; it does not own them
type Team struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name    string               `bson:"name" json:"name"`
	Members []primitive.ObjectID `bson:"members" json:"members"`
}

// CollectionName returns the collection name for Team
func (Team) CollectionName() string {
	return "teams"
}

// TeamWithMembers is a team whose member ids were expanded into user documents
type TeamWithMembers struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Name    string             `bson:"name" json:"name"`
	Members []User             `bson:"members" json:"members"`
}
