package client

import (
	"fmt"
	"net/url"
)

const (
	AuthLoginPath    = "/auth/login"
	AuthRegisterPath = "/auth/register"
	AuthMePath       = "/auth/me"
	AuthRefreshPath  = "/auth/refresh"

	PromptsPath       = "/prompts"
	OptimizationsPath = "/optimizations"
	TemplatesPath     = "/templates"

	AnalyticsDashboardPath   = "/analytics/dashboard"
	AnalyticsUsagePath       = "/analytics/usage"
	AnalyticsPerformancePath = "/analytics/performance"

	UsersProfilePath = "/users/profile"
)

func PromptPath(id string) string {
	return fmt.Sprintf("%s/%s", PromptsPath, url.PathEscape(id))
}

func OptimizationPath(id string) string {
	return fmt.Sprintf("%s/%s", OptimizationsPath, url.PathEscape(id))
}

func TemplatePath(id string) string {
	return fmt.Sprintf("%s/%s", TemplatesPath, url.PathEscape(id))
}
