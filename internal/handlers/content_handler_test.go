package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taycraft/joinery-api/internal/handlers"
	"github.com/taycraft/joinery-api/pkg/apperrors"
	"github.com/taycraft/joinery-api/pkg/sanity"
)

// MockContentService implements ContentServiceInterface for testing
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) DocumentsByType(ctx context.Context, docType string) ([]sanity.Document, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sanity.Document), args.Error(1)
}

func contentRouter(mockService *MockContentService) *gin.Engine {
	handler := handlers.NewContentHandler(mockService)
	router := gin.New()
	router.GET("/content/:type", handler.GetDocuments)
	return router
}

func TestContentHandler_GetDocuments(t *testing.T) {
	mockService := new(MockContentService)
	mockService.On("DocumentsByType", mock.Anything, "project").Return([]sanity.Document{
		{"_id": "p1", "_type": "project", "title": "Oak staircase"},
	}, nil)

	router := contentRouter(mockService)

	req := httptest.NewRequest("GET", "/content/project", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "project", resp["type"])
	assert.Equal(t, float64(1), resp["count"])

	mockService.AssertExpectations(t)
}

func TestContentHandler_GetDocuments_UnknownType(t *testing.T) {
	mockService := new(MockContentService)
	mockService.On("DocumentsByType", mock.Anything, "blogPost").
		Return(nil, apperrors.NotFoundError("document type blogPost"))

	router := contentRouter(mockService)

	req := httptest.NewRequest("GET", "/content/blogPost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentHandler_GetDocuments_ServiceError(t *testing.T) {
	mockService := new(MockContentService)
	mockService.On("DocumentsByType", mock.Anything, "project").
		Return(nil, errors.New("content store unreachable"))

	router := contentRouter(mockService)

	req := httptest.NewRequest("GET", "/content/project", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
