package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type PromptStatus string

const (
	PromptStatusDraft      PromptStatus = "draft"
	PromptStatusOptimizing PromptStatus = "optimizing"
	PromptStatusCompleted  PromptStatus = "completed"
	PromptStatusFailed     PromptStatus = "failed"
)

const MaxPromptLength = 10000

type Prompt struct {
	ID                       ID           `json:"id" yaml:"id"`
	UserID                   ID           `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	OriginalPrompt           string       `json:"original_prompt" yaml:"original_prompt"`
	OptimizedPrompt          *string      `json:"optimized_prompt,omitempty" yaml:"optimized_prompt,omitempty"`
	Title                    *string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description              *string      `json:"description,omitempty" yaml:"description,omitempty"`
	Tags                     []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Category                 *string      `json:"category,omitempty" yaml:"category,omitempty"`
	PromptType               string       `json:"prompt_type,omitempty" yaml:"prompt_type,omitempty"`
	OriginalTokens           *int         `json:"original_tokens,omitempty" yaml:"original_tokens,omitempty"`
	OptimizedTokens          *int         `json:"optimized_tokens,omitempty" yaml:"optimized_tokens,omitempty"`
	TokenReductionPercentage *float64     `json:"token_reduction_percentage,omitempty" yaml:"token_reduction_percentage,omitempty"`
	ClarityScore             *float64     `json:"clarity_score,omitempty" yaml:"clarity_score,omitempty"`
	SpecificityScore         *float64     `json:"specificity_score,omitempty" yaml:"specificity_score,omitempty"`
	OverallQualityScore      *float64     `json:"overall_quality_score,omitempty" yaml:"overall_quality_score,omitempty"`
	Status                   PromptStatus `json:"status" yaml:"status"`
	CreatedAt                time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt                *time.Time   `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func (p Prompt) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.OriginalPrompt, validation.Required),
	)
}

func (p *Prompt) GetTitle() string {
	if p.Title != nil && len(*p.Title) > 0 {
		return *p.Title
	}
	if len(p.OriginalPrompt) > 40 {
		return p.OriginalPrompt[:40] + "..."
	}
	return p.OriginalPrompt
}

type PromptList struct {
	Prompts []Prompt `json:"prompts" yaml:"prompts"`
	Total   int      `json:"total" yaml:"total"`
	Page    int      `json:"page" yaml:"page"`
	Limit   int      `json:"limit" yaml:"limit"`
}

func (l PromptList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Prompts),
	)
}

type PromptCreate struct {
	OriginalPrompt string   `json:"original_prompt"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Category       string   `json:"category,omitempty"`
	PromptType     string   `json:"prompt_type,omitempty"`
}

func (p PromptCreate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OriginalPrompt, validation.Required, validation.RuneLength(1, MaxPromptLength)),
		validation.Field(&p.Title, validation.RuneLength(0, 255)),
		validation.Field(&p.Category, validation.RuneLength(0, 100)),
		validation.Field(&p.PromptType, validation.RuneLength(0, 50)),
	)
}

type PromptUpdate struct {
	OriginalPrompt *string       `json:"original_prompt,omitempty"`
	Title          *string       `json:"title,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	Category       *string       `json:"category,omitempty"`
	Status         *PromptStatus `json:"status,omitempty"`
}

func (p PromptUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.OriginalPrompt, validation.NilOrNotEmpty, validation.RuneLength(1, MaxPromptLength)),
		validation.Field(&p.Title, validation.RuneLength(0, 255)),
		validation.Field(&p.Category, validation.RuneLength(0, 100)),
		validation.Field(&p.Status, validation.In(
			PromptStatusDraft,
			PromptStatusOptimizing,
			PromptStatusCompleted,
			PromptStatusFailed,
		)),
	)
}

// ListOptions are the paging and filter query parameters of list endpoints.
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

func (o ListOptions) Query() map[string]string {
	query := map[string]string{}
	if o.Page > 0 {
		query["page"] = itoa(o.Page)
	}
	if o.Limit > 0 {
		query["limit"] = itoa(o.Limit)
	}
	if len(o.Category) > 0 {
		query["category"] = o.Category
	}
	if len(o.Search) > 0 {
		query["search"] = o.Search
	}
	return query
}
