package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sa-hr/eracun/internal/validate"
)

func TestValidOIB(t *testing.T) {
	tests := []struct {
		name  string
		oib   string
		valid bool
	}{
		{"valid check digit", "12345678903", true},
		{"valid check digit 2", "98765432106", true},
		{"valid repeated digits", "11111111119", true},
		{"wrong check digit", "12345678901", false},
		{"too short", "1234567890", false},
		{"too long", "123456789031", false},
		{"non-digit", "1234567890a", false},
		{"non-digit check", "1234567890x", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validate.ValidOIB(tt.oib))
		})
	}
}
