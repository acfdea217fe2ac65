package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/craftify/craftify-backend/config"
	apperrors "github.com/craftify/craftify-backend/internal/errors"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
	jwtCfg      *config.JWTConfig
}

func NewAuthController(authService service.AuthService, jwtCfg *config.JWTConfig) *AuthController {
	return &AuthController{
		authService: authService,
		jwtCfg:      jwtCfg,
	}
}

type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type RegisterRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Username    string          `json:"username" binding:"required,min=3,max=30"`
	Password    string          `json:"password" binding:"required,min=8"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Bio         string          `json:"bio"`
	Phone       string          `json:"phone"`
	CountryCode string          `json:"country_code"`
	DateOfBirth *time.Time      `json:"date_of_birth"`
	Address     *AddressRequest `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName   *string         `json:"first_name"`
	LastName    *string         `json:"last_name"`
	Bio         *string         `json:"bio"`
	Phone       *string         `json:"phone"`
	CountryCode *string         `json:"country_code"`
	DateOfBirth *time.Time      `json:"date_of_birth"`
	Address     *AddressRequest `json:"address"`
}

func addressInput(req *AddressRequest) *service.AddressInput {
	if req == nil {
		return nil
	}
	return &service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
}

// respondAuthError maps auth service errors to HTTP responses
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "this email is already registered")
	case errors.Is(err, service.ErrUsernameExists):
		apperrors.Conflict(c, apperrors.AuthUsernameExists, "this username is already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "invalid email or password")
	case errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidCountryCode),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrInvalidPostalCode):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "user not found")
	default:
		apperrors.InternalError(c, "")
	}
}

// Register creates a new account
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	user, tokens, err := ctrl.authService.Register(service.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		DateOfBirth: req.DateOfBirth,
		Address:     addressInput(req.Address),
	})
	if err != nil {
		log.Warn("Registration failed", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		respondAuthError(c, err)
		return
	}

	log.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login authenticates a user
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", map[string]interface{}{
			"email": req.Email,
		})
		respondAuthError(c, err)
		return
	}

	log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout revokes the presented access token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, ok := middleware.GetToken(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token, ctrl.jwtCfg.AccessTokenExpiry); err != nil {
		log.Error("Logout failed", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	userID, _ := middleware.GetUserID(c)
	log.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetProfile(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe updates the authenticated user's profile
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, service.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Bio:         req.Bio,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		DateOfBirth: req.DateOfBirth,
		Address:     addressInput(req.Address),
	})
	if err != nil {
		log.Warn("Profile update failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteMe deletes the authenticated user's account
// DELETE /api/v1/auth/me
func (ctrl *AuthController) DeleteMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.DeleteUser(userID); err != nil {
		log.Error("Account deletion failed", err, map[string]interface{}{
			"user_id": userID,
		})
		respondAuthError(c, err)
		return
	}

	log.Info("Account deleted", map[string]interface{}{
		"user_id": userID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
