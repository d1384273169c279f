// internal/handlers/upload.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dzfactories/backend/internal/i18n"
	"github.com/dzfactories/backend/internal/services"
	"github.com/dzfactories/backend/internal/utils"
)

type UploadHandler struct {
	storage *services.StorageService
}

func NewUploadHandler(storage *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storage: storage,
	}
}

// POST /api/upload/image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadInvalidImage), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalErrorResponse(c, err)
		return
	}
	defer file.Close()

	result, err := h.storage.UploadImage(file, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTooLarge):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadTooLarge), nil)
		case errors.Is(err, services.ErrNotAnImage):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadInvalidImage), nil)
		default:
			utils.InternalErrorResponse(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": result.URL,
	})
}
