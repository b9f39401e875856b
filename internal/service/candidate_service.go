package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Ishamahajan23/candidate-referral-system/internal/domain"
	"github.com/Ishamahajan23/candidate-referral-system/internal/dto"
	"github.com/Ishamahajan23/candidate-referral-system/internal/repository"
	"github.com/Ishamahajan23/candidate-referral-system/internal/storage"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/logger"
)

var (
	ErrCandidateExists   = errors.New("candidate already exists")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidStatus     = errors.New("invalid status")
)

// CandidateService defines the candidate management operations
type CandidateService interface {
	// List returns candidates matching the filter, newest first
	List(ctx context.Context, filter *domain.CandidateFilter) ([]*domain.Candidate, error)
	// Stats returns live per-stage counts
	Stats(ctx context.Context) (*domain.CandidateStats, error)
	// Create validates and persists a referral; resume is optional
	Create(ctx context.Context, req *dto.CreateCandidateRequest, resume *storage.Upload) (*domain.Candidate, error)
	// UpdateStatus overwrites a candidate's pipeline stage
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Candidate, error)
	// Delete removes a candidate permanently
	Delete(ctx context.Context, id string) error
}

type candidateService struct {
	candidateRepo repository.CandidateRepository
	resumes       storage.Storage
}

// NewCandidateService creates a new CandidateService
func NewCandidateService(candidateRepo repository.CandidateRepository, resumes storage.Storage) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		resumes:       resumes,
	}
}

// List returns candidates matching the filter, newest first
func (s *candidateService) List(ctx context.Context, filter *domain.CandidateFilter) ([]*domain.Candidate, error) {
	return s.candidateRepo.List(ctx, filter)
}

// Stats returns live per-stage counts
func (s *candidateService) Stats(ctx context.Context) (*domain.CandidateStats, error) {
	return s.candidateRepo.CountByStatus(ctx)
}

// Create validates and persists a referral. The resume (when present) is
// stored first; if intake fails the candidate is not created, and if the
// insert fails the stored file is removed again.
func (s *candidateService) Create(ctx context.Context, req *dto.CreateCandidateRequest, resume *storage.Upload) (*domain.Candidate, error) {
	email := normalizeEmail(req.Email)

	// Fast-path check; the unique index on email is the source of truth.
	exists, err := s.candidateRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCandidateExists
	}

	resumeURL := ""
	if resume != nil {
		resumeURL, err = s.resumes.Store(ctx, resume)
		if err != nil {
			return nil, err
		}
	}

	candidate := &domain.Candidate{
		ID:        bson.NewObjectID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		JobTitle:  strings.TrimSpace(req.JobTitle),
		Status:    domain.StatusPending,
		ResumeURL: resumeURL,
		CreatedAt: time.Now(),
	}

	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		if resumeURL != "" {
			s.removeResume(ctx, resumeURL)
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCandidateExists
		}
		return nil, err
	}
	return candidate, nil
}

// UpdateStatus overwrites a candidate's pipeline stage
func (s *candidateService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Candidate, error) {
	st := domain.Status(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}

	candidate, err := s.candidateRepo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}
	return candidate, nil
}

// Delete removes a candidate permanently. The stored resume is cleaned up
// best-effort; a failed file removal never fails the delete.
func (s *candidateService) Delete(ctx context.Context, id string) error {
	candidate, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if candidate == nil {
		return ErrCandidateNotFound
	}

	deleted, err := s.candidateRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCandidateNotFound
	}

	if candidate.ResumeURL != "" {
		s.removeResume(ctx, candidate.ResumeURL)
	}
	return nil
}

func (s *candidateService) removeResume(ctx context.Context, url string) {
	if err := s.resumes.Remove(ctx, url); err != nil {
		logger.Get().Warn("failed to remove resume file",
			zap.String("url", url),
			zap.Error(err),
		)
	}
}
