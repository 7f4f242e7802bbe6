package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SubscriptionTier string

const (
	SubscriptionTierFree       SubscriptionTier = "free"
	SubscriptionTierPro        SubscriptionTier = "pro"
	SubscriptionTierBusiness   SubscriptionTier = "business"
	SubscriptionTierEnterprise SubscriptionTier = "enterprise"
)

// ID is an opaque backend identifier. The API sends integers while older
// persisted sessions hold strings, so both are accepted.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// User is the identity cached by the client. The backend owns it.
type User struct {
	ID               ID               `json:"id" yaml:"id"`
	Email            string           `json:"email" yaml:"email"`
	Name             string           `json:"name" yaml:"name"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" yaml:"subscription_tier"`
	CreatedAt        *time.Time       `json:"created_at,omitempty" yaml:"created_at,omitempty"`

	FirstName              string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName               string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	IsActive               *bool  `json:"is_active,omitempty" yaml:"is_active,omitempty"`
	OptimizationsRemaining *int   `json:"optimizations_remaining,omitempty" yaml:"optimizations_remaining,omitempty"`
	TokensRemaining        *int   `json:"tokens_remaining,omitempty" yaml:"tokens_remaining,omitempty"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type rawUser User
	var raw rawUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw)
	if len(u.Name) == 0 {
		u.Name = strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
	}
	return nil
}

func (u *User) GetName() string {
	if len(u.Name) > 0 {
		return u.Name
	} else if len(u.Email) > 0 {
		return u.Email
	}
	return "Unknown"
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.SubscriptionTier, validation.In(
			SubscriptionTierFree,
			SubscriptionTierPro,
			SubscriptionTierBusiness,
			SubscriptionTierEnterprise,
		)),
	)
}
