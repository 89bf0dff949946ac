package services

import (
	"context"
	"io"

	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/pkg/sanity"
	"github.com/taycraft/joinery-api/pkg/trustpilot"
)

// EnquiryServiceInterface defines the interface for enquiry intake
// business logic.
type EnquiryServiceInterface interface {
	SubmitEnquiry(ctx context.Context, req *models.EnquirySubmission) (*models.EnquiryResponse, error)
}

// RevalidateServiceInterface defines the interface for content
// revalidation webhook processing.
type RevalidateServiceInterface interface {
	Revalidate(ctx context.Context, body []byte, querySecret string) (*models.RevalidationResponse, error)
}

// ReviewsServiceInterface defines the interface for aggregated review
// lookups.
type ReviewsServiceInterface interface {
	GetSummary(ctx context.Context) (*models.ReviewsSummary, error)
	GetFeaturedReviews(ctx context.Context, count int) ([]models.UnifiedReview, error)
	GetPlatformReviews(ctx context.Context, platform string) ([]models.UnifiedReview, error)
}

// ContentServiceInterface serves cached content-store documents to the
// rendering layer.
type ContentServiceInterface interface {
	DocumentsByType(ctx context.Context, docType string) ([]sanity.Document, error)
}

// ContentInvalidator is the slice of the content cache the revalidation
// service needs: invalidation only, never reads.
type ContentInvalidator interface {
	Invalidate(tags []string)
}

// AttachmentStore is the slice of the object storage client the enquiry
// service needs. Nil when storage is not configured.
type AttachmentStore interface {
	UploadAttachment(ctx context.Context, body io.Reader, key, contentType string, size int64) (string, error)
}

// ReviewsFetcher is the slice of the Trustpilot client the reviews service
// needs.
type ReviewsFetcher interface {
	FetchReviews(ctx context.Context) (*trustpilot.BusinessReviews, error)
}
