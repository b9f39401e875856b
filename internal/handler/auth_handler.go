package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Ishamahajan23/candidate-referral-system/internal/dto"
	"github.com/Ishamahajan23/candidate-referral-system/internal/service"
	"github.com/Ishamahajan23/candidate-referral-system/pkg/response"
)

// CookieConfig controls how the session token is mirrored into a cookie
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
	development bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, cookie CookieConfig, development bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		development: development,
	}
}

// Register handles account registration
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name, email and password are required")
		return
	}

	if valid, msg := req.ValidateEmail(); !valid {
		response.BadRequest(c, msg)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, "User with this email already exists")
			return
		}
		response.InternalError(c, err, h.development)
		return
	}

	h.setTokenCookie(c, result.Token)
	response.Success(c, result)
}

// Login handles account login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.InternalError(c, err, h.development)
		return
	}

	h.setTokenCookie(c, result.Token)
	response.Success(c, result)
}

// Logout clears the session cookie. Tokens are stateless, so this is
// best-effort from the server's perspective; the client discards the token.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// Me returns the authenticated account
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "Not authorized")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID.(string))
	if err != nil {
		response.InternalError(c, err, h.development)
		return
	}
	if user == nil {
		response.Unauthorized(c, "Not authorized, user not found")
		return
	}

	response.Success(c, gin.H{"user": user})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
}
