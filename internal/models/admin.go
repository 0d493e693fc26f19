package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a panel user. Passwords are stored as bcrypt hashes only.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
