package domain

import (
	"time"
)

// User is an account that owns workout programs and exercise lists.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`   // Unique, stored lower-cased
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}
