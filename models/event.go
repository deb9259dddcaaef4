package models

import "time"

// TrafficEvent is a single first-party page-view beacon hit.
type TrafficEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	SessionID string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
	PagePath  string    `json:"pagePath"`
	Referrer  string    `json:"referrer"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
}

// DailyTraffic is one day of rolled-up beacon traffic.
type DailyTraffic struct {
	Day       time.Time `json:"day"`
	PageViews uint64    `json:"pageViews"`
	Sessions  uint64    `json:"sessions"`
}
