package models

type DailyStat struct {
	Date          string  `json:"date" yaml:"date"`
	Optimizations int     `json:"optimizations" yaml:"optimizations"`
	TokensSaved   int     `json:"tokens_saved" yaml:"tokens_saved"`
	CostSavings   float64 `json:"cost_savings" yaml:"cost_savings"`
}

// AnalyticsSummary backs the dashboard view.
type AnalyticsSummary struct {
	TotalOptimizations    int            `json:"total_optimizations" yaml:"total_optimizations"`
	TotalTokensSaved      int            `json:"total_tokens_saved" yaml:"total_tokens_saved"`
	TotalCostSavings      float64        `json:"total_cost_savings" yaml:"total_cost_savings"`
	AverageTokenReduction float64        `json:"average_token_reduction" yaml:"average_token_reduction"`
	AverageQualityScore   float64        `json:"average_quality_score" yaml:"average_quality_score"`
	ModelUsage            map[string]int `json:"model_usage" yaml:"model_usage"`
	OptimizationTypeUsage map[string]int `json:"optimization_type_usage" yaml:"optimization_type_usage"`
	DailyStats            []DailyStat    `json:"daily_stats" yaml:"daily_stats"`
}

type PerformanceMetrics struct {
	SuccessRate           float64              `json:"success_rate" yaml:"success_rate"`
	AverageProcessingTime float64              `json:"average_processing_time" yaml:"average_processing_time"`
	QualityTrend          []map[string]float64 `json:"quality_trend" yaml:"quality_trend"`
	EfficiencyTrend       []map[string]float64 `json:"efficiency_trend" yaml:"efficiency_trend"`
}

// UsageReport is the current billing-period consumption.
type UsageReport struct {
	SubscriptionTier       SubscriptionTier `json:"subscription_tier" yaml:"subscription_tier"`
	MonthlyOptimizations   int              `json:"monthly_optimizations" yaml:"monthly_optimizations"`
	OptimizationsUsed      int              `json:"optimizations_used" yaml:"optimizations_used"`
	OptimizationsRemaining int              `json:"optimizations_remaining" yaml:"optimizations_remaining"`
	MonthlyTokens          int              `json:"monthly_tokens" yaml:"monthly_tokens"`
	TokensUsed             int              `json:"tokens_used" yaml:"tokens_used"`
	TokensRemaining        int              `json:"tokens_remaining" yaml:"tokens_remaining"`
}
