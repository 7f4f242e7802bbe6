package common

import (
	"testing"
)

func TestIsValidAPIURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"http://localhost:8000/api/v1", true},
		{"https://api.example.com", true},
		{"HTTPS://api.example.com/v1", true},
		{"ftp://api.example.com", false},
		{"localhost:8000", false},
		{"/api/v1", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsValidAPIURL(test.input)
		if result != test.expected {
			t.Errorf("IsValidAPIURL(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"a@b.com", true},
		{"jane.doe@example.co.uk", true},
		{"not-an-email", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsValidEmail(test.input)
		if result != test.expected {
			t.Errorf("IsValidEmail(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}
