package services_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/taycraft/joinery-api/pkg/trustpilot"
)

// MockContentInvalidator is a mock implementation of ContentInvalidator
type MockContentInvalidator struct {
	mock.Mock
}

func (m *MockContentInvalidator) Invalidate(tags []string) {
	m.Called(tags)
}

// MockAttachmentStore is a mock implementation of AttachmentStore
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) UploadAttachment(ctx context.Context, body io.Reader, key, contentType string, size int64) (string, error) {
	args := m.Called(ctx, body, key, contentType, size)
	return args.String(0), args.Error(1)
}

// MockReviewsFetcher is a mock implementation of ReviewsFetcher
type MockReviewsFetcher struct {
	mock.Mock
}

func (m *MockReviewsFetcher) FetchReviews(ctx context.Context) (*trustpilot.BusinessReviews, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trustpilot.BusinessReviews), args.Error(1)
}
