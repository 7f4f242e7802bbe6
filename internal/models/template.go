package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Template struct {
	ID                    ID         `json:"id" yaml:"id"`
	Name                  string     `json:"name" yaml:"name"`
	Description           *string    `json:"description,omitempty" yaml:"description,omitempty"`
	TemplateContent       string     `json:"template_content" yaml:"template_content"`
	Category              string     `json:"category" yaml:"category"`
	Industry              *string    `json:"industry,omitempty" yaml:"industry,omitempty"`
	Tags                  []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	DifficultyLevel       string     `json:"difficulty_level,omitempty" yaml:"difficulty_level,omitempty"`
	UsageCount            int        `json:"usage_count" yaml:"usage_count"`
	AverageRating         float64    `json:"average_rating" yaml:"average_rating"`
	RatingCount           int        `json:"rating_count" yaml:"rating_count"`
	IsPublic              bool       `json:"is_public" yaml:"is_public"`
	IsFeatured            bool       `json:"is_featured" yaml:"is_featured"`
	EstimatedTokens       *int       `json:"estimated_tokens,omitempty" yaml:"estimated_tokens,omitempty"`
	OptimizationPotential *float64   `json:"optimization_potential,omitempty" yaml:"optimization_potential,omitempty"`
	Author                *string    `json:"author,omitempty" yaml:"author,omitempty"`
	Version               string     `json:"version,omitempty" yaml:"version,omitempty"`
	CreatedAt             time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func (t Template) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.TemplateContent, validation.Required),
	)
}

type TemplateList struct {
	Templates []Template `json:"templates" yaml:"templates"`
	Total     int        `json:"total" yaml:"total"`
	Page      int        `json:"page" yaml:"page"`
	Limit     int        `json:"limit" yaml:"limit"`
}

func (l TemplateList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Templates),
	)
}

type TemplateCreate struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	TemplateContent string   `json:"template_content"`
	Category        string   `json:"category"`
	Industry        string   `json:"industry,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DifficultyLevel string   `json:"difficulty_level,omitempty"`
}

func (t TemplateCreate) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&t.TemplateContent, validation.Required),
		validation.Field(&t.Category, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&t.Industry, validation.RuneLength(0, 100)),
		validation.Field(&t.DifficultyLevel, validation.RuneLength(0, 20)),
	)
}

type TemplateUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	TemplateContent *string  `json:"template_content,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Industry        *string  `json:"industry,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DifficultyLevel *string  `json:"difficulty_level,omitempty"`
	IsPublic        *bool    `json:"is_public,omitempty"`
	IsFeatured      *bool    `json:"is_featured,omitempty"`
}
