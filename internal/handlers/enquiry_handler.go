package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taycraft/joinery-api/internal/models"
	"github.com/taycraft/joinery-api/internal/services"
)

// EnquiryHandler receives lead-capture form submissions.
type EnquiryHandler struct {
	service services.EnquiryServiceInterface
}

func NewEnquiryHandler(service services.EnquiryServiceInterface) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// SubmitEnquiry handles POST /api/v1/enquiry (multipart form).
func (h *EnquiryHandler) SubmitEnquiry(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		// TODO: reclassify parse failures as 400 once the form clients are
		// audited; the deployed endpoint has always answered 500 here and
		// callers may depend on it.
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, models.EnquiryResponse{
			Success: false,
			Error:   "Internal server error",
		})
		return
	}

	req := &models.EnquirySubmission{
		Name:           formValue(form, "name"),
		Phone:          formValue(form, "phone"),
		Email:          formValue(form, "email"),
		Postcode:       formValue(form, "postcode"),
		Service:        formValue(form, "service"),
		Budget:         formValue(form, "budget"),
		PreferredTime:  formValue(form, "preferredTime"),
		ProjectDetails: formValue(form, "projectDetails"),
		Consent:        formValue(form, "consent"),
		Honeypot:       formValue(form, "honeypot"),
		Files:          form.File["files"],
	}

	resp, err := h.service.SubmitEnquiry(c.Request.Context(), req)
	if err != nil {
		attachError(c, err)
		c.JSON(http.StatusInternalServerError, models.EnquiryResponse{
			Success: false,
			Error:   "Internal server error",
		})
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// formValue returns the first value of a multipart form field.
func formValue(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
