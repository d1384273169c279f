// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzfactories/backend/internal/config"
	"github.com/dzfactories/backend/internal/i18n"
	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
	"github.com/dzfactories/backend/internal/utils"
)

type AuthHandler struct {
	store repository.Store
	cfg   *config.Config
}

func NewAuthHandler(store repository.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store: store,
		cfg:   cfg,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := h.store.GetUserByEmail(c.Request.Context(), email)
	if err == nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAuthEmailTaken), nil)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		utils.InternalErrorResponse(c, err)
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      req.Name,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	if _, err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": i18n.T(lang, i18n.KeyAuthRegisterSuccess),
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same response as a wrong password so the route does not
			// reveal which accounts exist
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	if err := user.CheckPassword(req.Password); err != nil {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		return
	}

	role := string(user.Role)
	if h.cfg.IsAdminEmail(user.Email) {
		role = string(models.RoleAdmin)
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Name, user.Picture, role, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"user":   user,
	})
}

type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Picture *string `json:"picture" validate:"omitempty,url,max=500"`
}

// PATCH /api/auth/user
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Role and googleId are never client-writable
	update := &models.UserUpdate{
		Name:    req.Name,
		Picture: req.Picture,
	}

	user, err := h.store.UpdateUser(c.Request.Context(), userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyUserNotFound)
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}

// GET /api/auth/user
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyUserNotFound)
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}
