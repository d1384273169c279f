// internal/handlers/factory.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dzfactories/backend/internal/i18n"
	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
	"github.com/dzfactories/backend/internal/utils"
)

type FactoryHandler struct {
	store repository.Store
}

func NewFactoryHandler(store repository.Store) *FactoryHandler {
	return &FactoryHandler{
		store: store,
	}
}

type CreateFactoryRequest struct {
	Name           string            `json:"name" validate:"required,max=255"`
	NameAr         string            `json:"nameAr" validate:"required,max=255"`
	Description    string            `json:"description" validate:"required"`
	DescriptionAr  string            `json:"descriptionAr" validate:"required"`
	Address        string            `json:"address" validate:"required,max=500"`
	AddressAr      string            `json:"addressAr" validate:"required,max=500"`
	Wilaya         string            `json:"wilaya" validate:"required,wilaya"`
	Category       string            `json:"category" validate:"required,sector"`
	Products       models.StringList `json:"products"`
	ProductsAr     models.StringList `json:"productsAr"`
	Gallery        models.StringList `json:"gallery"`
	Certifications models.StringList `json:"certifications"`
	Phone          string            `json:"phone" validate:"required,max=50"`
	Email          string            `json:"email" validate:"required,email"`
	Website        string            `json:"website" validate:"omitempty,url"`
	Latitude       string            `json:"latitude" validate:"max=50"`
	Longitude      string            `json:"longitude" validate:"max=50"`
	Certified      bool              `json:"certified"`
	Verified       bool              `json:"verified"`
}

// GET /api/factories
func (h *FactoryHandler) List(c *gin.Context) {
	filter := repository.FactoryFilter{
		Search:   c.Query("search"),
		Wilaya:   c.Query("wilaya"),
		Category: c.Query("category"),
	}

	factories, err := h.store.ListFactories(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	if factories == nil {
		factories = []models.Factory{}
	}

	c.JSON(http.StatusOK, factories)
}

// GET /api/factories/:id
func (h *FactoryHandler) Get(c *gin.Context) {
	id := c.Param("id")

	factory, err := h.store.GetFactory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyFactoryNotFound)
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	// A lost increment is acceptable; losing the detail response is not
	if err := h.store.IncrementViews(c.Request.Context(), id); err != nil {
		logrus.WithError(err).WithField("factory_id", id).Warn("Failed to increment views")
	} else {
		factory.ViewsCount++
	}

	c.JSON(http.StatusOK, factory)
}

// POST /api/factories
func (h *FactoryHandler) Create(c *gin.Context) {
	var req CreateFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	now := time.Now().UTC()
	factory := &models.Factory{
		ID:             uuid.New().String(),
		Name:           req.Name,
		NameAr:         req.NameAr,
		Description:    req.Description,
		DescriptionAr:  req.DescriptionAr,
		Address:        req.Address,
		AddressAr:      req.AddressAr,
		Wilaya:         req.Wilaya,
		Category:       req.Category,
		Products:       req.Products,
		ProductsAr:     req.ProductsAr,
		Gallery:        req.Gallery,
		Certifications: req.Certifications,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Certified:      req.Certified,
		Verified:       req.Verified,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if userID, exists := utils.GetUserIDFromContext(c); exists {
		factory.OwnerID = userID
	}

	created, err := h.store.CreateFactory(c.Request.Context(), factory)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// PATCH /api/factories/:id
func (h *FactoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var update models.FactoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if update.Wilaya != nil && !models.IsValidWilaya(*update.Wilaya) {
		utils.BadRequestResponse(c, "Unknown wilaya", nil)
		return
	}
	if update.Category != nil && !models.IsValidCategory(*update.Category) {
		utils.BadRequestResponse(c, "Unknown industrial sector", nil)
		return
	}

	factory, err := h.store.UpdateFactory(c.Request.Context(), id, &update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyFactoryNotFound)
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, factory)
}

// DELETE /api/factories/:id
func (h *FactoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.store.DeleteFactory(c.Request.Context(), id)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}
	if !deleted {
		utils.NotFoundResponse(c, i18n.KeyFactoryNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/stats
func (h *FactoryHandler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GET /api/wilayas
func (h *FactoryHandler) Wilayas(c *gin.Context) {
	c.JSON(http.StatusOK, models.Wilayas)
}

// GET /api/categories
func (h *FactoryHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Categories)
}
