package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taycraft/joinery-api/internal/handlers"
	"github.com/taycraft/joinery-api/internal/models"
)

// MockEnquiryService implements EnquiryServiceInterface for testing
type MockEnquiryService struct {
	mock.Mock
}

func (m *MockEnquiryService) SubmitEnquiry(ctx context.Context, req *models.EnquirySubmission) (*models.EnquiryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnquiryResponse), args.Error(1)
}

func enquiryRouter(mockService *MockEnquiryService) *gin.Engine {
	handler := handlers.NewEnquiryHandler(mockService)
	router := gin.New()
	router.POST("/enquiry", handler.SubmitEnquiry)
	return router
}

// multipartBody builds a multipart form request body from field values and
// optional file attachments.
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		assert.NoError(t, err)
		_, err = part.Write(content)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func validEnquiryFields() map[string]string {
	return map[string]string{
		"name":           "Alice MacLeod",
		"phone":          "07700900123",
		"email":          "alice@example.com",
		"postcode":       "DD1 4HN",
		"service":        "kitchen-fitting",
		"budget":         "5000-10000",
		"preferredTime":  "morning",
		"projectDetails": "Full kitchen refit",
		"consent":        "true",
	}
}

func TestEnquiryHandler_SubmitEnquiry_Success(t *testing.T) {
	mockService := new(MockEnquiryService)
	mockService.On("SubmitEnquiry", mock.Anything, mock.MatchedBy(func(req *models.EnquirySubmission) bool {
		return req.Name == "Alice MacLeod" &&
			req.Email == "alice@example.com" &&
			req.Consent == "true" &&
			req.Honeypot == ""
	})).Return(&models.EnquiryResponse{
		Success:   true,
		Message:   "Enquiry received successfully",
		EnquiryID: "ENQ-1756742400000",
	}, nil)

	router := enquiryRouter(mockService)

	body, contentType := multipartBody(t, validEnquiryFields(), nil)
	req := httptest.NewRequest("POST", "/enquiry", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.EnquiryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ENQ-1756742400000", resp.EnquiryID)

	mockService.AssertExpectations(t)
}

func TestEnquiryHandler_SubmitEnquiry_WithAttachments(t *testing.T) {
	mockService := new(MockEnquiryService)
	mockService.On("SubmitEnquiry", mock.Anything, mock.MatchedBy(func(req *models.EnquirySubmission) bool {
		return len(req.Files) == 2
	})).Return(&models.EnquiryResponse{Success: true, EnquiryID: "ENQ-1756742400001"}, nil)

	router := enquiryRouter(mockService)

	body, contentType := multipartBody(t, validEnquiryFields(), map[string][]byte{
		"sketch.pdf": []byte("%PDF-1.4 fake"),
		"photo.jpg":  []byte{0xFF, 0xD8, 0xFF},
	})
	req := httptest.NewRequest("POST", "/enquiry", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestEnquiryHandler_SubmitEnquiry_ValidationFailure(t *testing.T) {
	mockService := new(MockEnquiryService)
	mockService.On("SubmitEnquiry", mock.Anything, mock.Anything).Return(&models.EnquiryResponse{
		Success: false,
		Error:   "Missing required fields",
	}, nil)

	router := enquiryRouter(mockService)

	body, contentType := multipartBody(t, map[string]string{"name": "Alice"}, nil)
	req := httptest.NewRequest("POST", "/enquiry", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.EnquiryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing required fields", resp.Error)
}

func TestEnquiryHandler_SubmitEnquiry_HoneypotRejection(t *testing.T) {
	mockService := new(MockEnquiryService)
	mockService.On("SubmitEnquiry", mock.Anything, mock.MatchedBy(func(req *models.EnquirySubmission) bool {
		return req.Honeypot == "gotcha"
	})).Return(&models.EnquiryResponse{
		Success: false,
		Error:   "Invalid submission",
	}, nil)

	router := enquiryRouter(mockService)

	fields := validEnquiryFields()
	fields["honeypot"] = "gotcha"
	body, contentType := multipartBody(t, fields, nil)
	req := httptest.NewRequest("POST", "/enquiry", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.EnquiryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid submission", resp.Error)
	mockService.AssertExpectations(t)
}

func TestEnquiryHandler_SubmitEnquiry_NotMultipart(t *testing.T) {
	mockService := new(MockEnquiryService)
	router := enquiryRouter(mockService)

	// A JSON body is not a parseable multipart form
	req := httptest.NewRequest("POST", "/enquiry", bytes.NewReader([]byte(`{"name":"Alice"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.EnquiryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Error)

	mockService.AssertNotCalled(t, "SubmitEnquiry")
}

func TestEnquiryHandler_SubmitEnquiry_ServiceError(t *testing.T) {
	mockService := new(MockEnquiryService)
	mockService.On("SubmitEnquiry", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	router := enquiryRouter(mockService)

	body, contentType := multipartBody(t, validEnquiryFields(), nil)
	req := httptest.NewRequest("POST", "/enquiry", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.EnquiryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Error)
}
