package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taycraft/joinery-api/internal/services"
	"github.com/taycraft/joinery-api/pkg/apperrors"
)

// ContentHandler serves cached content-store documents to the rendering
// layer.
type ContentHandler struct {
	service services.ContentServiceInterface
}

func NewContentHandler(service services.ContentServiceInterface) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetDocuments handles GET /api/v1/content/:type
func (h *ContentHandler) GetDocuments(c *gin.Context) {
	docType := c.Param("type")

	docs, err := h.service.DocumentsByType(c.Request.Context(), docType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Unknown document type", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch content", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":      docType,
		"count":     len(docs),
		"documents": docs,
	})
}
