package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/internal/services"
	"github.com/taycraft/joinery-api/pkg/apperrors"
)

// RevalidateHandler receives content-store change webhooks.
type RevalidateHandler struct {
	service services.RevalidateServiceInterface
}

func NewRevalidateHandler(service services.RevalidateServiceInterface) *RevalidateHandler {
	return &RevalidateHandler{service: service}
}

// HandleContentWebhook handles POST /api/v1/revalidate. The service owns
// the ordered checks; this handler only moves bytes and maps sentinel
// errors to statuses.
func (h *RevalidateHandler) HandleContentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		attachError(c, err)
		c.JSON(http.StatusBadRequest, models.RevalidationResponse{OK: false, Error: "Invalid JSON"})
		return
	}

	resp, err := h.service.Revalidate(c.Request.Context(), body, c.Query("secret"))
	if err != nil {
		attachError(c, err)
		switch {
		case errors.Is(err, apperrors.ErrMisconfiguredServer):
			c.JSON(http.StatusInternalServerError, models.RevalidationResponse{OK: false, Error: "Missing secret"})
		case errors.Is(err, apperrors.ErrMalformedRequest):
			c.JSON(http.StatusBadRequest, models.RevalidationResponse{OK: false, Error: "Invalid JSON"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, models.RevalidationResponse{OK: false, Error: "Unauthorized"})
		default:
			c.JSON(http.StatusInternalServerError, models.RevalidationResponse{OK: false, Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
