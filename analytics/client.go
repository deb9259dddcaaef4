package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

// ReportRow is one reporting-API row; metric values are positional strings
// aligned with the requested metric list.
type ReportRow struct {
	MetricValues []string
}

// ReportingClient abstracts the external reporting API so callers can be
// exercised against a fake without network access.
type ReportingClient interface {
	RunReport(ctx context.Context, propertyID string, start, end time.Time, metrics []string) ([]ReportRow, error)
}

// ClientFactory builds a ReportingClient from service-account credentials.
// A fresh client is opened per request; there is no connection reuse contract.
type ClientFactory func(ctx context.Context, clientEmail, privateKey string) (ReportingClient, error)

type googleClient struct {
	svc *analyticsdata.Service
}

// NewGoogleClient builds a Google Analytics Data API client from a
// service-account email and private key. Literal "\n" escape sequences in the
// key (as pasted into an env var) are unescaped to real newlines.
func NewGoogleClient(ctx context.Context, clientEmail, privateKey string) (ReportingClient, error) {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		TokenURL:   google.JWTTokenURL,
		Scopes:     []string{analyticsdata.AnalyticsReadonlyScope},
	}

	svc, err := analyticsdata.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data client: %w", err)
	}

	return &googleClient{svc: svc}, nil
}

func (c *googleClient) RunReport(ctx context.Context, propertyID string, start, end time.Time, metrics []string) ([]ReportRow, error) {
	req := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		}},
		Dimensions: []*analyticsdata.Dimension{{Name: "date"}},
	}
	for _, m := range metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: m})
	}

	resp, err := c.svc.Properties.RunReport("properties/"+propertyID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("run report failed: %w", err)
	}

	rows := make([]ReportRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		row := ReportRow{}
		for _, mv := range r.MetricValues {
			row.MetricValues = append(row.MetricValues, mv.Value)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
