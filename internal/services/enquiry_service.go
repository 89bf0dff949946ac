package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/taycraft/joinery-api/config"
	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"go.uber.org/zap"
)

// emailPattern is the intake address check: at least one non-space,
// non-@ character before the @, between the @ and a literal dot, and after
// the dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EnquiryService handles lead-capture form submissions. Each submission is
// validated, logged, and acknowledged; persistence and staff notification
// are extension points owned by external collaborators. Attachments are
// uploaded only when an object store is configured, and upload failures
// never fail the enquiry.
type EnquiryService struct {
	config  *config.Config
	storage AttachmentStore
}

// NewEnquiryService creates a new enquiry service instance. storage may be
// nil when no attachment store is configured.
func NewEnquiryService(cfg *config.Config, storage AttachmentStore) *EnquiryService {
	return &EnquiryService{
		config:  cfg,
		storage: storage,
	}
}

// SubmitEnquiry runs the ordered intake pipeline. Each step short-circuits
// the rest; all validation failures surface as an unsuccessful response,
// never as an error.
func (s *EnquiryService) SubmitEnquiry(ctx context.Context, req *models.EnquirySubmission) (*models.EnquiryResponse, error) {
	// Honeypot check first: the field is hidden from real users, so any
	// value means an automated submission. Rejected before validation so
	// bots learn nothing about the form contract.
	if req.Honeypot != "" {
		metrics.EnquirySubmissions.WithLabelValues("spam").Inc()
		logger.Warn("Enquiry rejected by honeypot filter",
			zap.String("postcode", req.Postcode))
		return &models.EnquiryResponse{
			Success: false,
			Error:   "Invalid submission",
		}, nil
	}

	// Field presence: all-or-nothing, one coarse-grained reason. The form
	// surfaces per-field messages client-side.
	if req.Name == "" || req.Phone == "" || req.Email == "" || req.Postcode == "" ||
		req.Service == "" || req.ProjectDetails == "" || req.Consent != "true" {
		metrics.EnquirySubmissions.WithLabelValues("missing_fields").Inc()
		return &models.EnquiryResponse{
			Success: false,
			Error:   "Missing required fields",
		}, nil
	}

	if !emailPattern.MatchString(req.Email) {
		metrics.EnquirySubmissions.WithLabelValues("invalid_email").Inc()
		return &models.EnquiryResponse{
			Success: false,
			Error:   "Invalid email format",
		}, nil
	}

	now := time.Now()
	req.SubmittedAt = now.UTC().Format(time.RFC3339)
	enquiryID := fmt.Sprintf("ENQ-%d", now.UnixMilli())

	stored := s.storeAttachments(ctx, enquiryID, req)

	attachments := req.AttachmentMetadata()
	metrics.EnquirySubmissions.WithLabelValues("success").Inc()
	metrics.EnquiryAttachments.WithLabelValues(fmt.Sprintf("%t", stored)).Observe(float64(len(attachments)))

	// The structured log is the enquiry's externally observable record.
	// File metadata only, never content.
	logger.Info("New enquiry received",
		zap.String("enquiry_id", enquiryID),
		zap.String("name", req.Name),
		zap.String("phone", req.Phone),
		zap.String("email", req.Email),
		zap.String("postcode", req.Postcode),
		zap.String("service", req.Service),
		zap.String("budget", req.Budget),
		zap.String("preferred_time", req.PreferredTime),
		zap.String("project_details", req.ProjectDetails),
		zap.String("submitted_at", req.SubmittedAt),
		zap.Any("files", attachments),
	)

	return &models.EnquiryResponse{
		Success:   true,
		Message:   "Enquiry received successfully",
		EnquiryID: enquiryID,
	}, nil
}

// storeAttachments uploads attachments when an object store is configured.
// Returns true only if every attachment was stored.
func (s *EnquiryService) storeAttachments(ctx context.Context, enquiryID string, req *models.EnquirySubmission) bool {
	if s.storage == nil || len(req.Files) == 0 {
		return false
	}

	stored := true
	for _, fh := range req.Files {
		file, err := fh.Open()
		if err != nil {
			logger.Warn("Failed to open enquiry attachment",
				zap.String("enquiry_id", enquiryID),
				zap.String("file", fh.Filename),
				zap.Error(err))
			stored = false
			continue
		}

		key := fmt.Sprintf("enquiries/%s/%s", enquiryID, fh.Filename)
		if _, err := s.storage.UploadAttachment(ctx, file, key, fh.Header.Get("Content-Type"), fh.Size); err != nil {
			logger.Warn("Failed to store enquiry attachment",
				zap.String("enquiry_id", enquiryID),
				zap.String("file", fh.Filename),
				zap.Error(err))
			stored = false
		}
		_ = file.Close() //nolint:errcheck
	}
	return stored
}
