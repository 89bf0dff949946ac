package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"github.com/taycraft/joinery-api/pkg/sanity"
	"go.uber.org/zap"
)

const contentCacheName = "content"

// ContentFetcher loads the content-store documents backing one document
// type. Wired to the Sanity client in production, stubbed in tests.
type ContentFetcher func(ctx context.Context, docType string) ([]sanity.Document, error)

// ContentCache is the tag-indexed in-memory cache of content-store
// documents. One entry per cache tag; revalidation deletes entries, the next
// read refetches. The tag table itself is read-only at request time.
type ContentCache struct {
	cache   *gocache.Cache
	fetcher ContentFetcher
	mu      sync.RWMutex
	ready   bool
}

// NewContentCache creates a content cache with the given TTL in seconds.
func NewContentCache(fetcher ContentFetcher, ttlSeconds int) *ContentCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &ContentCache{
		cache:   gocache.New(ttl, 10*time.Minute),
		fetcher: fetcher,
	}
}

// Initialize performs initial cache population (synchronous, blocks until
// ready). Should be called during application startup before accepting
// requests.
func (cc *ContentCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing content cache...")

	for _, tag := range AllTags() {
		if _, err := cc.refresh(ctx, tag); err != nil {
			logger.Error("Failed to initialize content cache",
				zap.String("tag", tag), zap.Error(err))
			return err
		}
	}

	cc.mu.Lock()
	cc.ready = true
	cc.mu.Unlock()

	logger.Info("Content cache initialized successfully",
		zap.Int("tags", len(AllTags())))
	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (cc *ContentCache) IsReady() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.ready
}

// Get retrieves the documents behind a cache tag, fetching on miss.
func (cc *ContentCache) Get(ctx context.Context, tag string) ([]sanity.Document, error) {
	if !cc.IsReady() {
		return nil, fmt.Errorf("content cache not initialized")
	}

	if data, found := cc.cache.Get(tag); found {
		metrics.CacheHits.WithLabelValues(contentCacheName).Inc()
		docs, ok := data.([]sanity.Document)
		if !ok {
			logger.Error("Invalid content cache data type", zap.String("tag", tag))
			cc.cache.Delete(tag)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return docs, nil
	}

	metrics.CacheMisses.WithLabelValues(contentCacheName).Inc()
	logger.Info("Content cache miss, fetching from content store",
		zap.String("tag", tag))

	return cc.refresh(ctx, tag)
}

// Invalidate deletes the entries for the given tags. Deleting a tag that is
// already absent is a no-op, so repeated invalidation is idempotent.
func (cc *ContentCache) Invalidate(tags []string) {
	for _, tag := range tags {
		cc.cache.Delete(tag)
		metrics.CacheInvalidations.WithLabelValues(tag).Inc()
	}

	logger.Info("Content cache tags invalidated", zap.Strings("tags", tags))
}

// refresh fetches the documents behind a tag and updates the cache. A tag
// entry holds the documents of every type that maps to it.
func (cc *ContentCache) refresh(ctx context.Context, tag string) ([]sanity.Document, error) {
	var docs []sanity.Document
	for _, docType := range TypesForTag(tag) {
		typeDocs, err := cc.fetcher(ctx, docType)
		if err != nil {
			logger.Error("Failed to refresh content cache",
				zap.String("tag", tag),
				zap.String("doc_type", docType),
				zap.Error(err))
			return nil, err
		}
		docs = append(docs, typeDocs...)
	}

	cc.cache.Set(tag, docs, gocache.DefaultExpiration)

	logger.Info("Content cache refreshed",
		zap.String("tag", tag),
		zap.Int("documents", len(docs)))

	return docs, nil
}
