package models

import "mime/multipart"

// EnquirySubmission represents one lead-capture form submission. All fields
// arrive as multipart form values; Consent is the literal string "true" when
// given. Honeypot is a hidden field real users never see.
type EnquirySubmission struct {
	Name           string
	Phone          string
	Email          string
	Postcode       string
	Service        string
	Budget         string
	PreferredTime  string
	ProjectDetails string
	Consent        string
	Honeypot       string
	SubmittedAt    string // ISO-8601, server-assigned
	Files          []*multipart.FileHeader
}

// AttachmentMeta is the file metadata logged for each attachment. Raw file
// bytes are never logged.
type AttachmentMeta struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// AttachmentMetadata extracts the loggable metadata from the submitted files.
func (e *EnquirySubmission) AttachmentMetadata() []AttachmentMeta {
	meta := make([]AttachmentMeta, 0, len(e.Files))
	for _, f := range e.Files {
		meta = append(meta, AttachmentMeta{
			Name: f.Filename,
			Size: f.Size,
			Type: f.Header.Get("Content-Type"),
		})
	}
	return meta
}

// EnquiryResponse represents the response after submitting an enquiry
type EnquiryResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	EnquiryID string `json:"enquiryId,omitempty"`
	Error     string `json:"error,omitempty"`
}
