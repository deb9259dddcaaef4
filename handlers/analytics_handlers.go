package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rymdix/api/analytics"
	"rymdix/api/models"
)

// GAConfig holds the reporting-API service-account credentials.
type GAConfig struct {
	PropertyID  string
	ClientEmail string
	PrivateKey  string
}

type AnalyticsHandlers struct {
	Config    GAConfig
	NewClient analytics.ClientFactory
}

func NewAnalyticsHandlers(cfg GAConfig, factory analytics.ClientFactory) *AnalyticsHandlers {
	if factory == nil {
		factory = analytics.NewGoogleClient
	}
	return &AnalyticsHandlers{Config: cfg, NewClient: factory}
}

// GetSummary serves the best-effort 7-day traffic summary for the admin
// dashboard widget. The widget treats the response as advisory telemetry:
// every failure class except a wrong HTTP method degrades to a zero-filled
// 200 with a human-readable error string, never a 5xx.
func (h *AnalyticsHandlers) GetSummary(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusMethodNotAllowed, models.AnalyticsSummary{Error: "Method not allowed"})
		return
	}

	if err := analytics.ValidateCredentials(h.Config.PropertyID, h.Config.ClientEmail, h.Config.PrivateKey); err != nil {
		c.JSON(http.StatusOK, models.AnalyticsSummary{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	client, err := h.NewClient(ctx, h.Config.ClientEmail, h.Config.PrivateKey)
	if err != nil {
		log.Printf("GA summary: failed to create reporting client: %v", err)
		c.JSON(http.StatusOK, models.AnalyticsSummary{Error: errorMessage(err)})
		return
	}

	today := time.Now()
	sevenDaysAgo := today.AddDate(0, 0, -7)

	rows, err := client.RunReport(ctx, h.Config.PropertyID, sevenDaysAgo, today, analytics.SummaryMetrics)
	if err != nil {
		log.Printf("GA summary: report call failed: %v", err)
		c.JSON(http.StatusOK, models.AnalyticsSummary{Error: errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, analytics.Summarize(rows))
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Failed to fetch analytics data"
	}
	return err.Error()
}
