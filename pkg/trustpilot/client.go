package trustpilot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/taycraft/joinery-api/pkg/httpclient"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.trustpilot.com/v1"

// Review is a single Trustpilot consumer review.
type Review struct {
	ID         string   `json:"id"`
	Stars      int      `json:"stars"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Consumer   Consumer `json:"consumer"`
	CreatedAt  string   `json:"createdAt"`
	IsVerified bool     `json:"isVerified"`
	Language   string   `json:"language"`
	URL        string   `json:"url"`
}

// Consumer identifies the review author.
type Consumer struct {
	DisplayName     string `json:"displayName"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// Business holds the business-unit summary.
type Business struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DisplayName     string          `json:"displayName"`
	NumberOfReviews NumberOfReviews `json:"numberOfReviews"`
	TrustScore      float64         `json:"trustScore"`
	Stars           float64         `json:"stars"`
	LogoURL         string          `json:"logoUrl,omitempty"`
	WebsiteURL      string          `json:"websiteUrl,omitempty"`
}

// NumberOfReviews breaks the review count down by star rating.
type NumberOfReviews struct {
	Total      int `json:"total"`
	OneStar    int `json:"oneStar"`
	TwoStars   int `json:"twoStars"`
	ThreeStars int `json:"threeStars"`
	FourStars  int `json:"fourStars"`
	FiveStars  int `json:"fiveStars"`
}

// BusinessReviews bundles the business-unit summary with its reviews.
type BusinessReviews struct {
	Business Business `json:"business"`
	Reviews  []Review `json:"reviews"`
}

// Client talks to the Trustpilot business-units API. The API key is
// optional for public data.
type Client struct {
	baseURL    string
	businessID string
	apiKey     string
	httpClient httpclient.Client
}

// NewClient creates a Trustpilot client for one business unit.
func NewClient(businessID, apiKey string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		businessID: businessID,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL, businessID, apiKey string, httpClient httpclient.Client) *Client {
	c := NewClient(businessID, apiKey, httpClient)
	c.baseURL = baseURL
	return c
}

// FetchReviews fetches the business unit summary and its reviews.
func (c *Client) FetchReviews(ctx context.Context) (*BusinessReviews, error) {
	start := time.Now()
	operation := "fetchReviews"

	var business Business
	if err := c.getJSON(ctx, fmt.Sprintf("%s/business-units/%s", c.baseURL, c.businessID), &business); err != nil {
		c.record(operation, "error", start, err)
		return nil, err
	}

	var reviewsResp struct {
		Reviews []Review `json:"reviews"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/business-units/%s/reviews", c.baseURL, c.businessID), &reviewsResp); err != nil {
		c.record(operation, "error", start, err)
		return nil, err
	}

	c.record(operation, "success", start, nil)

	return &BusinessReviews{
		Business: business,
		Reviews:  reviewsResp.Reviews,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create Trustpilot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Trustpilot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Trustpilot returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Trustpilot response: %w", err)
	}

	return nil
}

func (c *Client) record(operation, status string, start time.Time, err error) {
	duration := metrics.MeasureDuration(start)
	metrics.ReviewsFetches.WithLabelValues("trustpilot", status).Inc()
	if err != nil {
		logger.LogAPICall("trustpilot", operation, status, duration, zap.Error(err))
		return
	}
	logger.LogAPICall("trustpilot", operation, status, duration)
}
