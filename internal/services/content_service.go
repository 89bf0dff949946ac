package services

import (
	"context"

	"github.com/taycraft/joinery-api/internal/cache"
	"github.com/taycraft/joinery-api/pkg/apperrors"
	"github.com/taycraft/joinery-api/pkg/sanity"
)

// ContentService serves cached content-store documents to the rendering
// layer. Reads go through the tag-indexed cache, so a revalidated tag is
// refetched on the next read.
type ContentService struct {
	cache *cache.ContentCache
}

// NewContentService creates a new content service instance.
func NewContentService(contentCache *cache.ContentCache) *ContentService {
	return &ContentService{cache: contentCache}
}

// DocumentsByType returns the cached documents of one document type.
// Unknown types are a not-found error, not an invalidate-all trigger; the
// conservative fallback belongs to the webhook path only.
func (s *ContentService) DocumentsByType(ctx context.Context, docType string) ([]sanity.Document, error) {
	tags, known := cache.TagsForType(docType)
	if !known {
		return nil, apperrors.NotFoundError("document type " + docType)
	}

	docs, err := s.cache.Get(ctx, tags[0])
	if err != nil {
		return nil, err
	}

	// A tag entry can hold several document types (testimonials live under
	// the homepage tag); serve only the requested one.
	filtered := make([]sanity.Document, 0, len(docs))
	for _, doc := range docs {
		if t, _ := doc["_type"].(string); t == docType {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}
