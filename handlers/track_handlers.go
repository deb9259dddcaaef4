package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rymdix/api/models"
)

type TrafficHandlers struct {
	TrafficStore TrafficRepository
}

func NewTrafficHandlers(trafficStore TrafficRepository) *TrafficHandlers {
	return &TrafficHandlers{TrafficStore: trafficStore}
}

// TrackEvents receives a batch of page-view beacon hits from the site. The
// beacon is fire-and-forget on the client, so a disabled store answers 200.
func (h *TrafficHandlers) TrackEvents(c *gin.Context) {
	if h.TrafficStore == nil {
		c.Status(http.StatusOK)
		return
	}

	var incomingEvents []models.TrafficEvent
	if err := c.ShouldBindJSON(&incomingEvents); err != nil {
		log.Printf("Error binding incoming traffic JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(incomingEvents) == 0 {
		c.Status(http.StatusOK)
		return
	}

	eventsToInsert := make([]models.TrafficEvent, 0, len(incomingEvents))
	for _, event := range incomingEvents {
		event.EventID = uuid.New().String()
		event.IPAddress = c.ClientIP()
		if event.EventType == "" {
			event.EventType = "page_view"
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}
		eventsToInsert = append(eventsToInsert, event)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.TrafficStore.InsertTrafficEvents(ctx, eventsToInsert); err != nil {
		log.Printf("Error inserting traffic events into ClickHouse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record traffic events"})
		return
	}

	c.Status(http.StatusOK)
}

// GetDailyTraffic serves the admin traffic chart: per-day page views and
// unique sessions over an optional RFC3339 start/end window (default:
// trailing 7 days).
func (h *TrafficHandlers) GetDailyTraffic(c *gin.Context) {
	if h.TrafficStore == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false, "days": []models.DailyTraffic{}})
		return
	}

	var start, end time.Time
	var err error

	startParam := c.Query("start")
	if startParam != "" {
		start, err = time.Parse(time.RFC3339, startParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'start' timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
			return
		}
	} else {
		start = time.Now().UTC().Add(-7 * 24 * time.Hour)
	}

	endParam := c.Query("end")
	if endParam != "" {
		end, err = time.Parse(time.RFC3339, endParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'end' timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
			return
		}
	} else {
		end = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	days, err := h.TrafficStore.GetDailyTraffic(ctx, start, end)
	if err != nil {
		log.Printf("Error getting daily traffic: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve traffic statistics"})
		return
	}
	if days == nil {
		days = []models.DailyTraffic{}
	}

	c.JSON(http.StatusOK, gin.H{"enabled": true, "days": days})
}
