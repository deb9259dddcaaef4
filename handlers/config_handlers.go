package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SiteConfig holds the optional feature toggles the SPA gates its embeds on.
type SiteConfig struct {
	CalendlyURL     string
	GAMeasurementID string
	ContactEmail    string
	DatabaseEnabled bool
	BeaconEnabled   bool
	GAConfigured    bool
}

type ConfigHandlers struct {
	Config SiteConfig
}

func NewConfigHandlers(cfg SiteConfig) *ConfigHandlers {
	return &ConfigHandlers{Config: cfg}
}

// GetPublicConfig tells the site which optional features are on. An empty
// calendly_url means the booking embed falls back to the contact email; an
// empty ga_measurement_id disables the client-side page-view script.
func (h *ConfigHandlers) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"calendly_url":      h.Config.CalendlyURL,
		"ga_measurement_id": h.Config.GAMeasurementID,
		"contact_email":     h.Config.ContactEmail,
		"tracking_enabled":  h.Config.BeaconEnabled,
	})
}

// GetSettings reports configuration status for the admin settings page:
// which integrations are wired up, without echoing any secrets.
func (h *ConfigHandlers) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"database_configured":         h.Config.DatabaseEnabled,
		"beacon_configured":           h.Config.BeaconEnabled,
		"google_analytics_configured": h.Config.GAConfigured,
		"calendly_configured":         h.Config.CalendlyURL != "",
		"ga_measurement_id_set":       h.Config.GAMeasurementID != "",
	})
}
