package models

// AnalyticsSummary is the shape the admin dashboard widget consumes.
// The four counts are always present; Error is set only when the values
// could not be genuinely retrieved, in which case the counts are zeroed.
type AnalyticsSummary struct {
	ActiveUsers int    `json:"activeUsers"`
	PageViews   int    `json:"pageViews"`
	Sessions    int    `json:"sessions"`
	Events      int    `json:"events"`
	Error       string `json:"error,omitempty"`
}
