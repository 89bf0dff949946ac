package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taycraft/joinery-api/config"
	"github.com/taycraft/joinery-api/internal/cache"
	"github.com/taycraft/joinery-api/internal/services"
	"github.com/taycraft/joinery-api/pkg/apperrors"
)

const testSecret = "webhook-secret-123"

func newRevalidateService(secret string, invalidator services.ContentInvalidator) *services.RevalidateService {
	cfg := &config.Config{
		Revalidate: config.RevalidateConfig{Secret: secret},
	}
	return services.NewRevalidateService(cfg, invalidator)
}

func TestRevalidateService_MissingSecretConfig(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	service := newRevalidateService("", mockCache)

	// The configured-secret check runs before the body is even parsed
	resp, err := service.Revalidate(context.Background(), []byte("not even json"), "anything")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrMisconfiguredServer)
	mockCache.AssertNotCalled(t, "Invalidate")
}

func TestRevalidateService_InvalidJSON(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	service := newRevalidateService(testSecret, mockCache)

	resp, err := service.Revalidate(context.Background(), []byte("{not json"), testSecret)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrMalformedRequest)
	mockCache.AssertNotCalled(t, "Invalidate")
}

func TestRevalidateService_WrongSecret(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	service := newRevalidateService(testSecret, mockCache)

	resp, err := service.Revalidate(context.Background(), []byte(`{"_type":"project"}`), "wrong-secret")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockCache.AssertNotCalled(t, "Invalidate")
}

func TestRevalidateService_NoSecretProvided(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	service := newRevalidateService(testSecret, mockCache)

	resp, err := service.Revalidate(context.Background(), []byte(`{"_type":"project"}`), "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockCache.AssertNotCalled(t, "Invalidate")
}

func TestRevalidateService_SecretInBody(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	mockCache.On("Invalidate", []string{"content:project"}).Once()
	service := newRevalidateService(testSecret, mockCache)

	body := []byte(`{"secret":"` + testSecret + `","_type":"project"}`)
	resp, err := service.Revalidate(context.Background(), body, "")

	assert.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, []string{"content:project"}, resp.Revalidated)
	mockCache.AssertExpectations(t)
}

func TestRevalidateService_QuerySecretTakesPrecedence(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	service := newRevalidateService(testSecret, mockCache)

	// A correct body secret does not rescue a wrong query secret
	body := []byte(`{"secret":"` + testSecret + `","_type":"project"}`)
	resp, err := service.Revalidate(context.Background(), body, "wrong")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockCache.AssertNotCalled(t, "Invalidate")
}

func TestRevalidateService_KnownType(t *testing.T) {
	testCases := []struct {
		docType string
		tags    []string
	}{
		{"homepage", []string{"content:homepage"}},
		{"siteSettings", []string{"content:siteSettings"}},
		{"service", []string{"content:service"}},
		{"location", []string{"content:location"}},
		{"project", []string{"content:project"}},
		{"testimonial", []string{"content:homepage"}}, // testimonials render on the homepage
	}

	for _, tc := range testCases {
		t.Run(tc.docType, func(t *testing.T) {
			mockCache := new(MockContentInvalidator)
			mockCache.On("Invalidate", tc.tags).Once()
			service := newRevalidateService(testSecret, mockCache)

			body := []byte(`{"_type":"` + tc.docType + `"}`)
			resp, err := service.Revalidate(context.Background(), body, testSecret)

			assert.NoError(t, err)
			assert.True(t, resp.OK)
			assert.Equal(t, tc.tags, resp.Revalidated)
			mockCache.AssertExpectations(t)
		})
	}
}

func TestRevalidateService_TypeExtractorOrder(t *testing.T) {
	testCases := []struct {
		name string
		body string
		tags []string
	}{
		{"top-level _type", `{"_type":"project"}`, []string{"content:project"}},
		{"top-level type", `{"type":"service"}`, []string{"content:service"}},
		{"nested document._type", `{"document":{"_type":"location"}}`, []string{"content:location"}},
		{"_type wins over type", `{"_type":"project","type":"service"}`, []string{"content:project"}},
		{"type wins over nested", `{"type":"service","document":{"_type":"location"}}`, []string{"content:service"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockCache := new(MockContentInvalidator)
			mockCache.On("Invalidate", tc.tags).Once()
			service := newRevalidateService(testSecret, mockCache)

			resp, err := service.Revalidate(context.Background(), []byte(tc.body), testSecret)

			assert.NoError(t, err)
			assert.True(t, resp.OK)
			assert.Equal(t, tc.tags, resp.Revalidated)
			mockCache.AssertExpectations(t)
		})
	}
}

func TestRevalidateService_UnknownTypeInvalidatesAll(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"unmapped type", `{"_type":"blogPost"}`},
		{"no type field", `{"foo":"bar"}`},
		{"empty payload", `{}`},
		{"non-string _type", `{"_type":42}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockCache := new(MockContentInvalidator)
			mockCache.On("Invalidate", cache.AllTags()).Once()
			service := newRevalidateService(testSecret, mockCache)

			resp, err := service.Revalidate(context.Background(), []byte(tc.body), testSecret)

			assert.NoError(t, err)
			assert.True(t, resp.OK)
			assert.Equal(t, "all", resp.Revalidated)
			mockCache.AssertExpectations(t)
		})
	}
}

func TestRevalidateService_Idempotent(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	mockCache.On("Invalidate", []string{"content:project"}).Twice()
	service := newRevalidateService(testSecret, mockCache)

	body := []byte(`{"_type":"project"}`)
	ctx := context.Background()

	first, err := service.Revalidate(ctx, body, testSecret)
	assert.NoError(t, err)

	second, err := service.Revalidate(ctx, body, testSecret)
	assert.NoError(t, err)

	// Same webhook delivered twice yields the same response both times
	assert.Equal(t, first, second)
	mockCache.AssertExpectations(t)
}

func TestRevalidateService_MisconfiguredBeforeUnauthorized(t *testing.T) {
	mockCache := new(MockContentInvalidator)
	service := newRevalidateService("", mockCache)

	// With no secret configured, even a would-be-matching caller gets the
	// misconfiguration error, not unauthorized
	resp, err := service.Revalidate(context.Background(), []byte(`{"_type":"project"}`), "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrMisconfiguredServer)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
}
