package models

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type OptimizationType string

const (
	OptimizationTypeTokenReduction     OptimizationType = "token_reduction"
	OptimizationTypeQualityEnhancement OptimizationType = "quality_enhancement"
	OptimizationTypeClarityImprovement OptimizationType = "clarity_improvement"
	OptimizationTypeMultimodal         OptimizationType = "multimodal"
	OptimizationTypeModelAdaptation    OptimizationType = "model_adaptation"
)

var OptimizationTypes = []OptimizationType{
	OptimizationTypeTokenReduction,
	OptimizationTypeQualityEnhancement,
	OptimizationTypeClarityImprovement,
	OptimizationTypeMultimodal,
	OptimizationTypeModelAdaptation,
}

type OptimizationRequest struct {
	PromptID         *ID              `json:"prompt_id,omitempty"`
	OriginalPrompt   string           `json:"original_prompt"`
	OptimizationType OptimizationType `json:"optimization_type"`
	TargetModel      string           `json:"target_model,omitempty"`
	ReductionTarget  *float64         `json:"reduction_target,omitempty"`
	QualityThreshold *float64         `json:"quality_threshold,omitempty"`
}

func (r OptimizationRequest) Validate() error {
	types := make([]any, 0, len(OptimizationTypes))
	for _, t := range OptimizationTypes {
		types = append(types, t)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.OriginalPrompt, validation.Required, validation.RuneLength(1, MaxPromptLength)),
		validation.Field(&r.OptimizationType, validation.Required, validation.In(types...)),
		validation.Field(&r.ReductionTarget, validation.Min(0.1), validation.Max(0.9)),
		validation.Field(&r.QualityThreshold, validation.Min(1.0), validation.Max(10.0)),
	)
}

type Optimization struct {
	ID                       ID               `json:"id" yaml:"id"`
	PromptID                 ID               `json:"prompt_id" yaml:"prompt_id"`
	OptimizationType         OptimizationType `json:"optimization_type" yaml:"optimization_type"`
	ModelUsed                string           `json:"model_used" yaml:"model_used"`
	OriginalPrompt           string           `json:"original_prompt" yaml:"original_prompt"`
	OptimizedPrompt          string           `json:"optimized_prompt" yaml:"optimized_prompt"`
	OriginalTokens           int              `json:"original_tokens" yaml:"original_tokens"`
	OptimizedTokens          int              `json:"optimized_tokens" yaml:"optimized_tokens"`
	TokenReduction           int              `json:"token_reduction" yaml:"token_reduction"`
	TokenReductionPercentage float64          `json:"token_reduction_percentage" yaml:"token_reduction_percentage"`
	QualityScore             *float64         `json:"quality_score,omitempty" yaml:"quality_score,omitempty"`
	ClarityScore             *float64         `json:"clarity_score,omitempty" yaml:"clarity_score,omitempty"`
	SpecificityScore         *float64         `json:"specificity_score,omitempty" yaml:"specificity_score,omitempty"`
	OriginalCost             *float64         `json:"original_cost,omitempty" yaml:"original_cost,omitempty"`
	OptimizedCost            *float64         `json:"optimized_cost,omitempty" yaml:"optimized_cost,omitempty"`
	CostSavings              *float64         `json:"cost_savings,omitempty" yaml:"cost_savings,omitempty"`
	CostSavingsPercentage    *float64         `json:"cost_savings_percentage,omitempty" yaml:"cost_savings_percentage,omitempty"`
	ProcessingTime           *float64         `json:"processing_time,omitempty" yaml:"processing_time,omitempty"`
	CreatedAt                time.Time        `json:"created_at" yaml:"created_at"`
}

func (o Optimization) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ID, validation.Required),
		validation.Field(&o.OptimizedPrompt, validation.Required),
	)
}

type OptimizationUpdate struct {
	OptimizedPrompt *string `json:"optimized_prompt,omitempty"`
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
