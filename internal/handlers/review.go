// internal/handlers/review.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzfactories/backend/internal/i18n"
	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
	"github.com/dzfactories/backend/internal/utils"
)

type ReviewHandler struct {
	store repository.Store
}

func NewReviewHandler(store repository.Store) *ReviewHandler {
	return &ReviewHandler{
		store: store,
	}
}

type CreateReviewRequest struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
	CommentAr string `json:"commentAr" validate:"max=2000"`
}

// GET /api/factories/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	factoryID := c.Param("id")

	reviews, err := h.store.ListReviews(c.Request.Context(), factoryID)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, reviews)
}

// POST /api/factories/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	factoryID := c.Param("id")

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	factory, err := h.store.GetFactory(c.Request.Context(), factoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFoundResponse(c, i18n.KeyFactoryNotFound)
			return
		}
		utils.InternalErrorResponse(c, err)
		return
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		FactoryID: factoryID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CommentAr: req.CommentAr,
		CreatedAt: time.Now().UTC(),
	}

	created, err := h.store.CreateReview(c.Request.Context(), review)
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	// Fold the new rating into the running average on the factory record
	newCount := factory.ReviewsCount + 1
	newRating := (factory.Rating*float64(factory.ReviewsCount) + float64(req.Rating)) / float64(newCount)

	update := &models.FactoryUpdate{
		Rating:       &newRating,
		ReviewsCount: &newCount,
	}
	if _, err := h.store.UpdateFactory(c.Request.Context(), factoryID, update); err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  created,
	})
}
