// Package validation checks query parameters and form input before they reach
// the demo logic.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"spamlab/internal/ngram"
	"spamlab/internal/simulator"
)

// MaxMessageLength bounds messages accepted by the scorer and vectorizer.
const MaxMessageLength = 5000

var validate = validator.New(validator.WithRequiredStructEnabled())

// ContactForm is the contact page submission.
type ContactForm struct {
	Name    string `form:"name" json:"name" validate:"required,max=100"`
	Email   string `form:"email" json:"email" validate:"required,email,max=254"`
	Message string `form:"message" json:"message" validate:"required,max=5000"`
}

// MessageRequest is the body of the score and vectorize endpoints.
type MessageRequest struct {
	Message string `json:"message" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

// Struct validates s against its validate tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// FormatValidationError turns validator errors into a field to message map.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ParseNgramSize reads the n-gram slider value, falling back to def when raw is
// empty.
func ParseNgramSize(raw string, def int) (int, bool, string) {
	if raw == "" {
		return def, true, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, "n must be an integer"
	}
	if n < ngram.MinSize || n > ngram.MaxSize {
		return 0, false, fmt.Sprintf("n must be between %d and %d", ngram.MinSize, ngram.MaxSize)
	}
	return n, true, ""
}

// ParseThreshold reads a decision threshold, falling back to def when raw is
// empty.
func ParseThreshold(raw string, def float64) (float64, bool, string) {
	if raw == "" {
		return def, true, ""
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, false, "threshold must be a number"
	}
	if t < simulator.MinThreshold || t > simulator.MaxThreshold {
		return 0, false, fmt.Sprintf("threshold must be between %.1f and %.1f", simulator.MinThreshold, simulator.MaxThreshold)
	}
	return t, true, ""
}

// ParseFeatures reads the feature count slider, falling back to def when raw
// is empty. Values must sit on the slider step.
func ParseFeatures(raw string, def int) (int, bool, string) {
	if raw == "" {
		return def, true, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, "features must be an integer"
	}
	if n < simulator.MinFeatures || n > simulator.MaxFeatures || (n-simulator.MinFeatures)%simulator.FeaturesStep != 0 {
		return 0, false, fmt.Sprintf("features must be between %d and %d in steps of %d",
			simulator.MinFeatures, simulator.MaxFeatures, simulator.FeaturesStep)
	}
	return n, true, ""
}

// ValidateMessage rejects blank and oversized messages.
func ValidateMessage(message string) (bool, string) {
	if strings.TrimSpace(message) == "" {
		return false, "message is required"
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return false, fmt.Sprintf("message must be at most %d characters", MaxMessageLength)
	}
	return true, ""
}
