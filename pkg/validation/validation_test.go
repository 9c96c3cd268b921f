package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getzep/nerlog/pkg/models"
)

func TestCountWords(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want int
	}{
		{name: "sentence", text: "Alice met Bob.", want: 3},
		{name: "empty", text: "", want: 0},
		{name: "whitespace only", text: " \t\n ", want: 0},
		{name: "mixed whitespace", text: "one\ttwo\n\nthree   four", want: 4},
		{name: "punctuation is not split", text: "Paris, France; 2024!", want: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CountWords(tc.text))
		})
	}
}

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = gofakeit.LoremIpsumWord()
	}
	return strings.Join(w, " ")
}

func TestValidateText(t *testing.T) {
	t.Run("blank input", func(t *testing.T) {
		_, err := ValidateText("   \n\t", 1000)
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrEmptyInput))
		assert.Equal(t, "Please enter some text to process.", err.Error())
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		count, err := ValidateText(words(1000), 1000)
		assert.NoError(t, err)
		assert.Equal(t, 1000, count)
	})

	t.Run("one over the limit", func(t *testing.T) {
		count, err := ValidateText(words(1001), 1000)
		require.Error(t, err)
		assert.Equal(t, 1001, count)

		var wle *models.WordLimitExceededError
		require.True(t, errors.As(err, &wle))
		assert.Equal(t, 1000, wle.Limit)
		assert.True(t, strings.HasPrefix(err.Error(), "Word limit exceeded!"))
	})

	t.Run("generated sentence", func(t *testing.T) {
		sentence := gofakeit.Sentence(12)
		count, err := ValidateText(sentence, 1000)
		assert.NoError(t, err)
		assert.Equal(t, len(strings.Fields(sentence)), count)
	})
}

func TestStruct(t *testing.T) {
	assert.Error(t, Struct(&models.ProcessTextRequest{}))
	assert.NoError(t, Struct(&models.ProcessTextRequest{Text: "Paris"}))
}
