package di

import (
	"github.com/Ishamahajan23/candidate-referral-system/internal/handler"
	"github.com/Ishamahajan23/candidate-referral-system/internal/repository"
	"github.com/Ishamahajan23/candidate-referral-system/internal/service"
	"github.com/Ishamahajan23/candidate-referral-system/internal/storage"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/database"
)

// Container holds all dependencies for the referral service
type Container struct {
	// Infrastructure
	DB            *database.MongoDB
	ResumeStorage storage.Storage

	// Repositories
	UserRepo      repository.UserRepository
	CandidateRepo repository.CandidateRepository

	// Services
	AuthService      service.AuthService
	CandidateService service.CandidateService

	// Handlers
	AuthHandler      *handler.AuthHandler
	CandidateHandler *handler.CandidateHandler
	HealthHandler    *handler.HealthHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB            *database.MongoDB
	ResumeStorage storage.Storage
	UserRepo      repository.UserRepository
	CandidateRepo repository.CandidateRepository
	AuthConfig    *service.AuthServiceConfig
	Cookie        handler.CookieConfig
	Environment   string
	Development   bool
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:            cfg.DB,
		ResumeStorage: cfg.ResumeStorage,
		UserRepo:      cfg.UserRepo,
		CandidateRepo: cfg.CandidateRepo,
	}

	// Initialize services
	c.AuthService = service.NewAuthService(c.UserRepo, cfg.AuthConfig)
	c.CandidateService = service.NewCandidateService(c.CandidateRepo, c.ResumeStorage)

	// Initialize handlers
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, cfg.Cookie, cfg.Development)
	c.CandidateHandler = handler.NewCandidateHandler(c.CandidateService, cfg.Development)
	c.HealthHandler = handler.NewHealthHandler(c.DB, cfg.Environment)

	return c
}
