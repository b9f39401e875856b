package repository

import (
	"context"
	"errors"

	"github.com/Ishamahajan23/candidate-referral-system/internal/domain"
)

// ErrDuplicateKey is returned when an insert violates a unique index.
// The unique index is the source of truth for email uniqueness; service-level
// pre-checks are a fast path only.
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines persistence operations for accounts
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CandidateRepository defines persistence operations for candidates
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context, filter *domain.CandidateFilter) ([]*domain.Candidate, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Candidate, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByStatus(ctx context.Context) (*domain.CandidateStats, error)
}
