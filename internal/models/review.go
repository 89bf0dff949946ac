package models

// ReviewsQuery binds the reviews endpoint query parameters.
type ReviewsQuery struct {
	Type  string `form:"type" binding:"omitempty,oneof=all featured google trustpilot"`
	Count int    `form:"count" binding:"omitempty,min=1,max=50"`
}

// UnifiedReview is a single review normalized across platforms.
type UnifiedReview struct {
	ID           string  `json:"id"`
	Platform     string  `json:"platform"` // "google" or "trustpilot"
	Author       string  `json:"author"`
	Rating       float64 `json:"rating"`
	Title        string  `json:"title,omitempty"`
	Content      string  `json:"content"`
	Date         string  `json:"date"`
	Verified     bool    `json:"verified"`
	ProfileImage string  `json:"profileImage,omitempty"`
	ExternalURL  string  `json:"externalUrl,omitempty"`
	RelativeTime string  `json:"relativeTime"`
}

// PlatformStats summarizes one review platform.
type PlatformStats struct {
	Count  int     `json:"count"`
	Rating float64 `json:"rating"`
}

// ReviewsSummary aggregates reviews across all platforms.
type ReviewsSummary struct {
	TotalReviews      int             `json:"totalReviews"`
	AverageRating     float64         `json:"averageRating"`
	PlatformBreakdown map[string]PlatformStats `json:"platformBreakdown"`
	LatestReviews     []UnifiedReview `json:"latestReviews"`
}
