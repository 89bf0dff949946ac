package models

// RevalidationPayload is the raw webhook body from the content store. The
// store's default payloads vary in shape (top-level _type, type, or a nested
// document), so the body is kept generic and picked apart by an ordered list
// of extractors in the revalidation service.
type RevalidationPayload map[string]interface{}

// RevalidationResponse represents the revalidation endpoint's response.
// Revalidated is either the list of invalidated tags or the string "all"
// when the conservative fallback invalidated every known tag.
type RevalidationResponse struct {
	OK          bool        `json:"ok"`
	Revalidated interface{} `json:"revalidated,omitempty"`
	Error       string      `json:"error,omitempty"`
}
