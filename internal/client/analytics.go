package client

import (
	"context"
	"strconv"

	"github.com/aipo-io/cli/internal/models"
)

// Dashboard returns the analytics summary for the last days days.
func (c *Client) Dashboard(ctx context.Context, days int) (*models.AnalyticsSummary, error) {
	resp, err := c.get(ctx, AnalyticsDashboardPath, daysQuery(days))
	if err != nil {
		return nil, err
	}
	return decode[models.AnalyticsSummary](resp, "analytics summary")
}

func (c *Client) Usage(ctx context.Context) (*models.UsageReport, error) {
	resp, err := c.get(ctx, AnalyticsUsagePath, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.UsageReport](resp, "usage report")
}

func (c *Client) Performance(ctx context.Context, days int) (*models.PerformanceMetrics, error) {
	resp, err := c.get(ctx, AnalyticsPerformancePath, daysQuery(days))
	if err != nil {
		return nil, err
	}
	return decode[models.PerformanceMetrics](resp, "performance metrics")
}

func daysQuery(days int) map[string]string {
	if days <= 0 {
		return nil
	}
	return map[string]string{"days": strconv.Itoa(days)}
}
