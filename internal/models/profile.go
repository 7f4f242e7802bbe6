package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type UserProfile struct {
	ID                     ID               `json:"id" yaml:"id"`
	Email                  string           `json:"email" yaml:"email"`
	FirstName              *string          `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName               *string          `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	SubscriptionTier       SubscriptionTier `json:"subscription_tier" yaml:"subscription_tier"`
	IsActive               bool             `json:"is_active" yaml:"is_active"`
	OptimizationsRemaining int              `json:"optimizations_remaining" yaml:"optimizations_remaining"`
	TokensRemaining        int              `json:"tokens_remaining" yaml:"tokens_remaining"`
	MonthlyOptimizations   int              `json:"monthly_optimizations" yaml:"monthly_optimizations"`
	MonthlyTokens          int              `json:"monthly_tokens" yaml:"monthly_tokens"`
	OptimizationsUsed      int              `json:"optimizations_used" yaml:"optimizations_used"`
	TokensUsed             int              `json:"tokens_used" yaml:"tokens_used"`
	CreatedAt              time.Time        `json:"created_at" yaml:"created_at"`
	LastLogin              *time.Time       `json:"last_login,omitempty" yaml:"last_login,omitempty"`
}

func (p UserProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

type UserUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

func (u UserUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&u.FirstName, validation.RuneLength(0, 100)),
		validation.Field(&u.LastName, validation.RuneLength(0, 100)),
	)
}
