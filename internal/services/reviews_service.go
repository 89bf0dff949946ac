package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"
	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/pkg/circuitbreaker"
	"github.com/taycraft/joinery-api/pkg/logger"
	"go.uber.org/zap"
)

const reviewsSummaryCacheKey = "summary"

// ReviewsService aggregates external review platforms into one summary.
// Trustpilot is the live source; Google reviews need an OAuth2 setup that
// is not wired yet, so that side of the breakdown stays empty. Results are
// cached so review platform outages or rate limits don't surface on every
// page load, and the Trustpilot call sits behind a circuit breaker.
type ReviewsService struct {
	fetcher ReviewsFetcher
	breaker *gobreaker.CircuitBreaker
	cache   *gocache.Cache
}

// NewReviewsService creates a new reviews service instance.
func NewReviewsService(fetcher ReviewsFetcher, ttlSeconds int) *ReviewsService {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &ReviewsService{
		fetcher: fetcher,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("trustpilot")),
		cache:   gocache.New(ttl, 5*time.Minute),
	}
}

// GetSummary returns the aggregated review summary, from cache when fresh.
func (s *ReviewsService) GetSummary(ctx context.Context) (*models.ReviewsSummary, error) {
	if data, found := s.cache.Get(reviewsSummaryCacheKey); found {
		if summary, ok := data.(*models.ReviewsSummary); ok {
			return summary, nil
		}
	}

	summary, err := circuitbreaker.Execute(s.breaker, func() (*models.ReviewsSummary, error) {
		return s.fetchSummary(ctx)
	})
	if err != nil {
		logger.Error("Failed to fetch review summary", zap.Error(err))
		return nil, err
	}

	s.cache.Set(reviewsSummaryCacheKey, summary, gocache.DefaultExpiration)
	return summary, nil
}

// GetFeaturedReviews returns the latest 4+ star reviews, at most count.
func (s *ReviewsService) GetFeaturedReviews(ctx context.Context, count int) ([]models.UnifiedReview, error) {
	summary, err := s.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]models.UnifiedReview, 0, count)
	for _, review := range summary.LatestReviews {
		if review.Rating >= 4 {
			featured = append(featured, review)
		}
		if len(featured) == count {
			break
		}
	}
	return featured, nil
}

// GetPlatformReviews returns the latest reviews from a single platform.
func (s *ReviewsService) GetPlatformReviews(ctx context.Context, platform string) ([]models.UnifiedReview, error) {
	summary, err := s.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	reviews := make([]models.UnifiedReview, 0, len(summary.LatestReviews))
	for _, review := range summary.LatestReviews {
		if review.Platform == platform {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (s *ReviewsService) fetchSummary(ctx context.Context) (*models.ReviewsSummary, error) {
	fetched, err := s.fetcher.FetchReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	now := time.Now()
	all := make([]models.UnifiedReview, 0, len(fetched.Reviews))
	for _, r := range fetched.Reviews {
		all = append(all, models.UnifiedReview{
			ID:           "trustpilot-" + r.ID,
			Platform:     "trustpilot",
			Author:       r.Consumer.DisplayName,
			Rating:       float64(r.Stars),
			Title:        r.Title,
			Content:      r.Text,
			Date:         r.CreatedAt,
			Verified:     r.IsVerified,
			ProfileImage: r.Consumer.ProfileImageURL,
			ExternalURL:  r.URL,
			RelativeTime: relativeTime(r.CreatedAt, now),
		})
	}

	// Newest first. Dates are RFC 3339 strings, so lexicographic order is
	// chronological order.
	sort.Slice(all, func(i, j int) bool { return all[i].Date > all[j].Date })

	var ratingSum float64
	for _, r := range all {
		ratingSum += r.Rating
	}

	avg := 0.0
	if len(all) > 0 {
		avg = math.Round(ratingSum/float64(len(all))*10) / 10
	}

	latest := all
	if len(latest) > 10 {
		latest = latest[:10]
	}

	return &models.ReviewsSummary{
		TotalReviews:  len(all),
		AverageRating: avg,
		PlatformBreakdown: map[string]models.PlatformStats{
			"google":     {Count: 0, Rating: 0},
			"trustpilot": {Count: len(all), Rating: avg},
		},
		LatestReviews: latest,
	}, nil
}

// relativeTime renders a human-readable age for a review date. Unparseable
// dates come back empty rather than failing the aggregation.
func relativeTime(dateString string, now time.Time) string {
	date, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return ""
	}

	days := int(now.Sub(date).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}
