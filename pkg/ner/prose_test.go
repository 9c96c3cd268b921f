package ner

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProseAnnotator_Annotate(t *testing.T) {
	a, err := NewProseAnnotator("")
	require.NoError(t, err)
	require.NoError(t, a.Ready(context.Background()))

	text := "Lebron James plays basketball in Los Angeles for the Lakers."
	entities, err := a.Annotate(context.Background(), text)
	require.NoError(t, err)

	for _, e := range entities {
		assert.True(t, strings.Contains(text, e.Text), "entity %q is not a span of the input", e.Text)
		assert.NotEmpty(t, e.Label)
	}
}

func TestProseAnnotator_CancelledContext(t *testing.T) {
	a, err := NewProseAnnotator("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Annotate(ctx, "Paris")
	assert.ErrorIs(t, err, context.Canceled)
}
