package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ishamahajan23/candidate-referral-system/internal/di"
	"github.com/Ishamahajan23/candidate-referral-system/internal/handler"
	"github.com/Ishamahajan23/candidate-referral-system/internal/repository"
	"github.com/Ishamahajan23/candidate-referral-system/internal/service"
	"github.com/Ishamahajan23/candidate-referral-system/internal/storage"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/config"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/database"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/logger"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/middleware"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Candidate Referral Service...")

	ctx := context.Background()

	// Connect to MongoDB
	db, err := database.NewMongo(ctx, &database.MongoConfig{
		URI:            cfg.MongoDB.URI,
		Database:       cfg.MongoDB.Database,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
		MaxRetries:     cfg.MongoDB.MaxRetries,
		RetryInterval:  cfg.MongoDB.RetryInterval,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close(ctx)
	appLog.Info(fmt.Sprintf("Connected to MongoDB (database: %s)", cfg.MongoDB.Database))

	// Initialize repositories and unique indexes
	userRepo := repository.NewMongoUserRepository(db.Database())
	candidateRepo := repository.NewMongoCandidateRepository(db.Database())
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to create account indexes: %v", err))
	}
	if err := candidateRepo.EnsureIndexes(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to create candidate indexes: %v", err))
	}

	// Initialize resume storage
	resumeStorage, localDir, err := buildResumeStorage(ctx, cfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to initialize resume storage: %v", err))
	}
	appLog.Info(fmt.Sprintf("Resume storage ready (driver: %s)", cfg.Upload.Driver))

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:            db,
		ResumeStorage: resumeStorage,
		UserRepo:      userRepo,
		CandidateRepo: candidateRepo,
		AuthConfig: &service.AuthServiceConfig{
			JWTSecret:   cfg.JWT.Secret,
			TokenExpiry: cfg.JWT.TokenTTL,
		},
		Cookie: handler.CookieConfig{
			Name:   cfg.JWT.CookieName,
			MaxAge: int(cfg.JWT.TokenTTL / time.Second),
			Secure: cfg.JWT.SecureCooky,
		},
		Environment: cfg.App.Environment,
		Development: cfg.IsDevelopment(),
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	corsCfg.AllowCredentials = true
	router.Use(middleware.CORSWithConfig(corsCfg))

	// Locally stored resumes are served as static files
	if localDir != "" {
		router.Static(cfg.Upload.BaseURL, localDir)
	}

	// Health check endpoint
	router.GET("/health", container.HealthHandler.Check)

	// API routes
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", container.AuthHandler.Register)
			auth.POST("/login", container.AuthHandler.Login)
			auth.POST("/logout", container.AuthHandler.Logout)

			protected := auth.Group("")
			protected.Use(authMiddleware(container.AuthService, cfg.JWT.CookieName))
			{
				protected.GET("/me", container.AuthHandler.Me)
			}
		}

		candidates := api.Group("/candidates")
		candidates.Use(authMiddleware(container.AuthService, cfg.JWT.CookieName))
		{
			candidates.GET("", container.CandidateHandler.List)
			candidates.GET("/stats", container.CandidateHandler.Stats)
			candidates.POST("", container.CandidateHandler.Create)
			candidates.PUT("/:id/status", container.CandidateHandler.UpdateStatus)
			candidates.DELETE("/:id", container.CandidateHandler.Delete)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Candidate Referral Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

// buildResumeStorage selects the storage backend from configuration. The
// returned dir is non-empty only for the local driver, where it names the
// directory to serve statically.
func buildResumeStorage(ctx context.Context, cfg *config.Config) (storage.Storage, string, error) {
	switch cfg.Upload.Driver {
	case "s3":
		s3Store, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	default:
		localStore, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL)
		if err != nil {
			return nil, "", err
		}
		return localStore, localStore.Dir(), nil
	}
}

// authMiddleware validates the session token and sets user claims in context.
// The token is read from the Authorization header first, then the cookie.
func authMiddleware(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, "Not authorized, no token")
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "Not authorized, invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	const bearerPrefix = "Bearer "
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimSpace(authHeader[len(bearerPrefix):])
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// adminOnlyMiddleware restricts a route group to admin accounts.
func adminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "Not authorized")
			c.Abort()
			return
		}
		if role.(string) != "admin" {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
