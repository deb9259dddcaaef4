package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"rymdix/api/database"
	"rymdix/api/models"
)

// TrafficStore writes and aggregates first-party page-view beacon events in
// ClickHouse.
type TrafficStore struct {
	DB *database.ClickHouseClient
}

func NewTrafficStore(chClient *database.ClickHouseClient) *TrafficStore {
	return &TrafficStore{
		DB: chClient,
	}
}

func (s *TrafficStore) InsertTrafficEvents(ctx context.Context, events []models.TrafficEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column names and order must match the traffic_events table schema.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO traffic_events (
			event_id, event_type, session_id, timestamp, page_path, referrer, user_agent, ip_address
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.EventType,
			event.SessionID,
			event.Timestamp,
			event.PagePath,
			event.Referrer,
			event.UserAgent,
			event.IPAddress,
		)
		if err != nil {
			log.Printf("Error appending event to batch (EventID: %s): %v", event.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Recorded %d traffic events.", len(events))
	return nil
}

// GetDailyTraffic rolls beacon events up into per-day page views and unique
// sessions for the given window.
func (s *TrafficStore) GetDailyTraffic(ctx context.Context, start, end time.Time) ([]models.DailyTraffic, error) {
	query := `
		SELECT
			toStartOfDay(timestamp) AS day,
			countIf(event_type = 'page_view') AS page_views,
			uniqExact(session_id) AS sessions
		FROM traffic_events
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily traffic: %w", err)
	}
	defer rows.Close()

	var results []models.DailyTraffic
	for rows.Next() {
		var day models.DailyTraffic
		if err := rows.Scan(&day.Day, &day.PageViews, &day.Sessions); err != nil {
			log.Printf("Error scanning daily traffic row: %v", err)
			continue
		}
		results = append(results, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during daily traffic query: %w", err)
	}

	return results, nil
}
