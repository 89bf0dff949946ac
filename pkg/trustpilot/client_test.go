package trustpilot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taycraft/joinery-api/pkg/httpclient"
	"github.com/taycraft/joinery-api/pkg/logger"
	"github.com/taycraft/joinery-api/pkg/trustpilot"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func TestClient_FetchReviews(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/business-units/biz-1":
			_, _ = w.Write([]byte(`{
				"id": "biz-1",
				"displayName": "Taycraft Joinery",
				"trustScore": 4.6,
				"numberOfReviews": {"total": 42}
			}`))
		case "/business-units/biz-1/reviews":
			_, _ = w.Write([]byte(`{
				"reviews": [
					{"id": "r1", "stars": 5, "text": "Great work", "consumer": {"displayName": "Jim B"}, "createdAt": "2026-08-20T10:00:00Z", "isVerified": true}
				]
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := trustpilot.NewClientWithBaseURL(server.URL, "biz-1", "test-key", httpclient.NewStandardClient())

	result, err := client.FetchReviews(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Taycraft Joinery", result.Business.DisplayName)
	assert.Equal(t, 42, result.Business.NumberOfReviews.Total)
	assert.Len(t, result.Reviews, 1)
	assert.Equal(t, 5, result.Reviews[0].Stars)
	assert.True(t, result.Reviews[0].IsVerified)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestClient_FetchReviews_NoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reviews": []}`))
	}))
	defer server.Close()

	client := trustpilot.NewClientWithBaseURL(server.URL, "biz-1", "", httpclient.NewStandardClient())

	result, err := client.FetchReviews(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, result.Reviews)
}

func TestClient_FetchReviews_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := trustpilot.NewClientWithBaseURL(server.URL, "biz-1", "", httpclient.NewStandardClient())

	result, err := client.FetchReviews(context.Background())

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "429")
}
