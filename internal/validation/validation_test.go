package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactForm(t *testing.T) {
	tests := []struct {
		name     string
		form     ContactForm
		wantErrs map[string]string
	}{
		{
			name: "valid",
			form: ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hello"},
		},
		{
			name: "all missing",
			form: ContactForm{},
			wantErrs: map[string]string{
				"name":    "This field is required",
				"email":   "This field is required",
				"message": "This field is required",
			},
		},
		{
			name:     "bad email",
			form:     ContactForm{Name: "Ada", Email: "not-an-email", Message: "Hello"},
			wantErrs: map[string]string{"email": "Invalid email format"},
		},
		{
			name:     "name too long",
			form:     ContactForm{Name: strings.Repeat("a", 101), Email: "ada@example.com", Message: "Hello"},
			wantErrs: map[string]string{"name": "Must be at most 100 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.form)
			if tt.wantErrs == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErrs, FormatValidationError(err))
		})
	}
}

func TestContactForm_Normalize(t *testing.T) {
	f := ContactForm{Name: "  Ada ", Email: " ada@example.com\n", Message: "\tHi  "}
	f.Normalize()

	assert.Equal(t, ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, f)
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("x")))
}

func TestParseNgramSize(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"", 1, true},
		{"1", 1, true},
		{"4", 4, true},
		{"0", 0, false},
		{"5", 0, false},
		{"two", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok, msg := ParseNgramSize(tt.raw, 1)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, msg == "")
		})
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"", 0.5, true},
		{"0.1", 0.1, true},
		{"0.9", 0.9, true},
		{"0.05", 0, false},
		{"1", 0, false},
		{"NaN", 0, false},
		{"high", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok, _ := ParseThreshold(tt.raw, 0.5)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"", 3000, true},
		{"1000", 1000, true},
		{"9000", 9000, true},
		{"1500", 1500, true},
		{"1250", 0, false},
		{"500", 0, false},
		{"9500", 0, false},
		{"lots", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok, _ := ParseFeatures(tt.raw, 3000)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		valid   bool
	}{
		{"normal", "win a prize", true},
		{"empty", "", false},
		{"whitespace only", "  \n\t ", false},
		{"too long", strings.Repeat("a", MaxMessageLength+1), false},
		{"at limit", strings.Repeat("a", MaxMessageLength), true},
		{"multibyte at limit", strings.Repeat("垃", MaxMessageLength), true},
		{"multibyte over limit", strings.Repeat("垃", MaxMessageLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateMessage(tt.message)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.valid, msg == "")
		})
	}
}
