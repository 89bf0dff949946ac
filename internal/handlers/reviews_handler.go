package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/internal/services"
)

// ReviewsHandler serves aggregated external reviews.
type ReviewsHandler struct {
	service services.ReviewsServiceInterface
}

func NewReviewsHandler(service services.ReviewsServiceInterface) *ReviewsHandler {
	return &ReviewsHandler{service: service}
}

// GetReviews handles GET /api/v1/reviews?type=&count=
func (h *ReviewsHandler) GetReviews(c *gin.Context) {
	var query models.ReviewsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid query", ParseValidationErrors(err), err)
		return
	}

	if query.Count == 0 {
		query.Count = 10
	}

	ctx := c.Request.Context()

	switch query.Type {
	case "featured":
		reviews, err := h.service.GetFeaturedReviews(ctx, query.Count)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch reviews", err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	case "google", "trustpilot":
		reviews, err := h.service.GetPlatformReviews(ctx, query.Type)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch reviews", err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	default:
		summary, err := h.service.GetSummary(ctx)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch reviews", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
