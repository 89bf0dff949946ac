package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/taycraft/joinery-api/pkg/httpclient"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/metrics"
	"github.com/taycraft/joinery-api/pkg/retry"
	"go.uber.org/zap"
)

// Document is a raw content-store document. The rendering layer owns the
// per-type shapes; this service only moves documents around by type.
type Document map[string]interface{}

// Client queries the Sanity HTTP API (GROQ over the data/query endpoint).
type Client struct {
	baseURL    string
	token      string
	httpClient httpclient.Client
}

// NewClient creates a content store client for the given project and dataset.
func NewClient(projectID, dataset, apiVersion, token string, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/v%s/data/query/%s",
			projectID, apiVersion, dataset),
		token:      token,
		httpClient: httpClient,
	}
}

type queryResponse struct {
	Result []Document `json:"result"`
}

// DocumentsByType fetches all published documents of the given type,
// newest first.
func (c *Client) DocumentsByType(ctx context.Context, docType string) ([]Document, error) {
	query := fmt.Sprintf(`*[_type == %q] | order(_createdAt desc)`, docType)
	return c.query(ctx, "documentsByType", query)
}

func (c *Client) query(ctx context.Context, operation, groq string) ([]Document, error) {
	start := time.Now()

	requestURL := fmt.Sprintf("%s?query=%s", c.baseURL, url.QueryEscape(groq))

	var docs []Document
	err := retry.Do(ctx, retry.ContentStoreConfig(), operation, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create content store request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("content store request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("content store returned status %d: %s", resp.StatusCode, string(body))
		}

		var parsed queryResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("failed to decode content store response: %w", err)
		}

		docs = parsed.Result
		return nil
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.ContentStoreRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.ContentStoreRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("sanity", operation, "error", duration, zap.Error(err))
		return nil, err
	}

	metrics.ContentStoreRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.ContentStoreRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("sanity", operation, "success", duration,
		zap.Int("documents", len(docs)))

	return docs, nil
}
