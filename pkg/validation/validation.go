// Package validation holds the input guards applied before any text reaches the annotator.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/getzep/nerlog/pkg/models"
)

var validate = validator.New()

// CountWords returns the number of whitespace-delimited, non-empty tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ValidateText rejects blank input and input longer than limit words. Exactly limit words is
// accepted. It returns the word count of accepted text.
func ValidateText(text string, limit int) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, &models.EmptyInputError{}
	}
	count := CountWords(text)
	if count > limit {
		return count, &models.WordLimitExceededError{Count: count, Limit: limit}
	}
	return count, nil
}

// Struct validates a request body against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}
