package services

import (
	"context"
	"encoding/json"

	"github.com/taycraft/joinery-api/config"
	"github.com/taycraft/joinery-api/internal/cache"
	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/pkg/apperrors"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"go.uber.org/zap"
)

// documentTypeExtractors are tried in order against the raw webhook payload;
// the first non-empty result wins. The content store's default payloads put
// the type at the top level (_type or type) or on a nested document.
var documentTypeExtractors = []func(models.RevalidationPayload) string{
	func(p models.RevalidationPayload) string { return stringField(p, "_type") },
	func(p models.RevalidationPayload) string { return stringField(p, "type") },
	func(p models.RevalidationPayload) string {
		if doc, ok := p["document"].(map[string]interface{}); ok {
			return stringField(doc, "_type")
		}
		return ""
	},
}

// RevalidateService authenticates content-store webhooks and invalidates
// the cache tags mapped to the changed document type. The shared secret is
// injected at construction, never read from ambient process state.
type RevalidateService struct {
	secret string
	cache  ContentInvalidator
}

// NewRevalidateService creates a new revalidation service instance.
func NewRevalidateService(cfg *config.Config, invalidator ContentInvalidator) *RevalidateService {
	return &RevalidateService{
		secret: cfg.Revalidate.Secret,
		cache:  invalidator,
	}
}

// Revalidate processes one webhook call. Steps in contractual order:
// configured-secret check, body parse, caller-secret comparison (always
// before any cache mutation), type extraction, tag invalidation. Errors map
// to apperrors sentinels; the handler picks the status codes.
func (s *RevalidateService) Revalidate(ctx context.Context, body []byte, querySecret string) (*models.RevalidationResponse, error) {
	if s.secret == "" {
		metrics.RevalidationRequests.WithLabelValues("misconfigured").Inc()
		return nil, apperrors.MisconfiguredError("revalidation secret not configured")
	}

	var payload models.RevalidationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.RevalidationRequests.WithLabelValues("malformed").Inc()
		return nil, apperrors.MalformedRequestError("invalid JSON body")
	}

	provided := querySecret
	if provided == "" {
		provided = stringField(payload, "secret")
	}
	if provided != s.secret {
		metrics.RevalidationRequests.WithLabelValues("unauthorized").Inc()
		logger.Warn("Revalidation webhook rejected: secret mismatch")
		return nil, apperrors.ErrUnauthorized
	}

	docType := extractDocumentType(payload)

	tags, known := cache.TagsForType(docType)
	if !known {
		// Unknown or absent type: invalidate every known tag rather than
		// risk serving stale content.
		all := cache.AllTags()
		s.cache.Invalidate(all)
		metrics.RevalidationRequests.WithLabelValues("success_all").Inc()
		logger.Info("Revalidated all content tags",
			zap.String("doc_type", docType),
			zap.Int("tags", len(all)))
		return &models.RevalidationResponse{OK: true, Revalidated: "all"}, nil
	}

	s.cache.Invalidate(tags)
	metrics.RevalidationRequests.WithLabelValues("success").Inc()
	logger.Info("Revalidated content tags",
		zap.String("doc_type", docType),
		zap.Strings("tags", tags))

	return &models.RevalidationResponse{OK: true, Revalidated: tags}, nil
}

// extractDocumentType returns the first non-empty extractor result.
func extractDocumentType(payload models.RevalidationPayload) string {
	for _, extract := range documentTypeExtractors {
		if docType := extract(payload); docType != "" {
			return docType
		}
	}
	return ""
}

func stringField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
