package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/dto"
	"github.com/SscSPs/finance_flow/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles registration and login.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	authService  portssvc.AuthSvc
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:  services.User,
		authService:  services.Auth,
		tokenService: services.Token,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(services)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
	}
}

// register godoc
// @Summary Register new user
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Credentials"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username exists"
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind register request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Username already registered", slog.String("username", req.Username))
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Username already exists"})
			return
		}
		respondError(c, logger, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{Username: req.Username})
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	identity, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid username or password"})
			return
		}
		respondError(c, logger, err, "Failed to authenticate")
		return
	}

	token, expiresAt, err := h.tokenService.IssueToken(c.Request.Context(), identity)
	if err != nil {
		respondError(c, logger, err, "Failed to generate token")
		return
	}

	logger.Info("User logged in", slog.String("user", identity.Username))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
