package models

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// DecodeError reports a payload that did not match its schema.
type DecodeError struct {
	Schema string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Schema, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode unmarshals data into T and runs its validation rules, if any.
func Decode[T any](schema string, data []byte) (*T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, &DecodeError{Schema: schema, Err: err}
	}
	if err := validate(&item); err != nil {
		return nil, &DecodeError{Schema: schema, Err: err}
	}
	return &item, nil
}

func validate(item any) error {
	if v, ok := item.(validation.Validatable); ok {
		return v.Validate()
	}
	return nil
}
