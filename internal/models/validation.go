package models

import (
	"bytes"
	"encoding/json"

	"github.com/aipo-io/cli/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
)

// ErrorBody is the error payload the backend sends. Detail is either a
// plain message or a list of field errors.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldErrors []common.FieldError

func (f fieldErrors) Validate() error {
	for _, field := range f {
		if err := validation.Validate(field.Message, validation.Required); err != nil {
			return err
		}
	}
	return nil
}

// ParseErrorBody extracts the string detail or the structured field errors
// from an error response body. Bodies of any other shape yield neither.
func ParseErrorBody(body []byte) (string, []common.FieldError) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}

	var payload ErrorBody
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return "", nil
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail, nil
	}

	fields, err := Decode[fieldErrors]("validation error body", payload.Detail)
	if err != nil || len(*fields) == 0 {
		return "", nil
	}

	return "", []common.FieldError(*fields)
}
