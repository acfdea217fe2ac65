package controller

import (
	"net/http"
	"strconv"

	apperrors "github.com/craftify/craftify-backend/internal/errors"
	"github.com/craftify/craftify-backend/internal/app/service"
	"github.com/craftify/craftify-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	authService service.AuthService
}

func NewUserController(authService service.AuthService) *UserController {
	return &UserController{authService: authService}
}

// ListUsers returns paged public profiles
// GET /api/v1/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, total, err := ctrl.authService.ListUsers(limit, offset)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

// GetUser returns one public profile
// GET /api/v1/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid user ID")
		return
	}

	user, err := ctrl.authService.GetUser(uint(id))
	if err != nil {
		log.Warn("User lookup failed", map[string]interface{}{
			"user_id": id,
		})
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
