package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role represents user role
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account that can submit and manage referrals
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never serialize
	Role         Role          `bson:"role" json:"role"`
	CreatedAt    time.Time     `bson:"createdAt" json:"created_at"`
}

// Claims represents the verified identity carried by a session token
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
