package analytics

import (
	"errors"
	"strconv"
	"strings"

	"rymdix/api/models"
)

// The four metrics requested from the reporting API, in the positional order
// the summary is summed in.
const (
	MetricActiveUsers = "activeUsers"
	MetricPageViews   = "screenPageViews"
	MetricSessions    = "sessions"
	MetricEvents      = "eventCount"
)

// SummaryMetrics is the metric list sent with every summary report request.
var SummaryMetrics = []string{MetricActiveUsers, MetricPageViews, MetricSessions, MetricEvents}

var (
	ErrNotConfigured  = errors.New("Google Analytics not configured. Set GA_PROPERTY_ID, GA_CLIENT_EMAIL, and GA_PRIVATE_KEY.")
	ErrBadPrivateKey  = errors.New("Invalid GA_PRIVATE_KEY format. Should be the raw key value, not JSON.")
	ErrBadClientEmail = errors.New("Invalid GA_CLIENT_EMAIL format. Should be just the email address.")
)

// ValidateCredentials applies the copy-paste heuristics for credentials moved
// from a JSON service-account file into plain env vars. Best-effort checks,
// not a parser: a key containing the literal field name or ending in a
// quote-comma is almost certainly a pasted JSON fragment.
func ValidateCredentials(propertyID, clientEmail, privateKey string) error {
	if propertyID == "" || clientEmail == "" || privateKey == "" {
		return ErrNotConfigured
	}
	if strings.Contains(privateKey, "private_key") || strings.HasSuffix(privateKey, `",`) {
		return ErrBadPrivateKey
	}
	if strings.Contains(clientEmail, "client_email") || strings.Contains(clientEmail, `"`) {
		return ErrBadClientEmail
	}
	return nil
}

// Summarize sums each metric independently across all rows. Metric values are
// positional; a value missing or unparsable on a row contributes 0. Zero rows
// yield an all-zero summary, which is not an error.
func Summarize(rows []ReportRow) models.AnalyticsSummary {
	var summary models.AnalyticsSummary
	for _, row := range rows {
		summary.ActiveUsers += metricAt(row, 0)
		summary.PageViews += metricAt(row, 1)
		summary.Sessions += metricAt(row, 2)
		summary.Events += metricAt(row, 3)
	}
	return summary
}

func metricAt(row ReportRow, i int) int {
	if i >= len(row.MetricValues) {
		return 0
	}
	n, err := strconv.Atoi(row.MetricValues[i])
	if err != nil {
		return 0
	}
	return n
}
