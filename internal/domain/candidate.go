package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Status represents a candidate's pipeline stage
type Status string

const (
	StatusPending  Status = "Pending"
	StatusReviewed Status = "Reviewed"
	StatusHired    Status = "Hired"

	// StatusAll is accepted in list filters and means no status filter
	StatusAll = "all"
)

// Statuses lists every valid pipeline stage
var Statuses = []Status{StatusPending, StatusReviewed, StatusHired}

// Valid reports whether s is one of the allowed pipeline stages
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusHired:
		return true
	}
	return false
}

// Candidate represents a referred person tracked through the hiring pipeline
type Candidate struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone" json:"phone"`
	JobTitle  string        `bson:"jobTitle" json:"jobTitle"`
	Status    Status        `bson:"status" json:"status"`
	ResumeURL string        `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// CandidateFilter narrows a candidate listing
type CandidateFilter struct {
	// Search is matched case-insensitively against name, jobTitle and email
	Search string
	// Status is an exact stage match; empty or "all" means no filter
	Status string
}

// CandidateStats holds live per-stage counts
type CandidateStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Hired    int64 `json:"hired"`
}
