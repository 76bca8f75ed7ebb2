package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

type stubWriter struct {
	saved *Recipe
	err   error
}

func (s *stubWriter) PutRecipe(ctx context.Context, rec *Recipe) error {
	s.saved = rec
	return s.err
}

const tacoResponse = `Sure! Here is your recipe:
{"title": "Black Bean & Corn Tacos", "day": "", "description": "Weeknight tacos.",
 "sections": [{"title": "Ingredients", "type": "ingredients", "items": ["1 can black beans"]}]}
Let me know if you need anything else.`

func TestNormalize(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts JSON from surrounding prose and derives the id", func(t *testing.T) {
		gen := &stubGenerator{response: tacoResponse}
		writer := &stubWriter{}
		n := NewNormalizer(gen, writer)

		result, err := n.Normalize(ctx, "black bean tacos with corn")
		require.NoError(t, err)

		assert.Equal(t, "black-bean-corn-tacos", result.Recipe.ID)
		assert.Equal(t, "black-bean-corn-tacos.json", result.Filename)
		assert.True(t, result.Saved)
		assert.NoError(t, result.SaveErr)
		require.NotNil(t, writer.saved)
		assert.Equal(t, "Black Bean & Corn Tacos", writer.saved.Title)
		assert.Contains(t, gen.prompt, "black bean tacos with corn")
	})

	t.Run("model-provided id is discarded", func(t *testing.T) {
		gen := &stubGenerator{response: `{"id": "model-made-this-up", "title": "Lentil Soup", "sections": []}`}
		n := NewNormalizer(gen, nil)

		result, err := n.Normalize(ctx, "lentil soup")
		require.NoError(t, err)
		assert.Equal(t, "lentil-soup", result.Recipe.ID)
	})

	t.Run("blank input is a validation error", func(t *testing.T) {
		n := NewNormalizer(&stubGenerator{}, nil)
		_, err := n.Normalize(ctx, "   \n\t ")
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("response without JSON is an upstream-format error", func(t *testing.T) {
		gen := &stubGenerator{response: "I cannot format that recipe, sorry."}
		n := NewNormalizer(gen, nil)
		_, err := n.Normalize(ctx, "some recipe")
		assert.True(t, common.IsUpstreamFormatError(err))
	})

	t.Run("unparsable JSON span is an upstream-format error", func(t *testing.T) {
		gen := &stubGenerator{response: `{"title": "Broken`}
		n := NewNormalizer(gen, nil)
		_, err := n.Normalize(ctx, "some recipe")
		assert.True(t, common.IsUpstreamFormatError(err))
	})

	t.Run("generator failure propagates", func(t *testing.T) {
		boom := errors.New("upstream down")
		n := NewNormalizer(&stubGenerator{err: boom}, nil)
		_, err := n.Normalize(ctx, "some recipe")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing title falls back to untitled slug", func(t *testing.T) {
		gen := &stubGenerator{response: `{"day": "", "sections": []}`}
		n := NewNormalizer(gen, nil)

		result, err := n.Normalize(ctx, "mystery meal")
		require.NoError(t, err)
		assert.Equal(t, "untitled-recipe", result.Recipe.ID)
	})

	t.Run("failed save is reported without losing the document", func(t *testing.T) {
		gen := &stubGenerator{response: tacoResponse}
		writer := &stubWriter{err: errors.New("disk full")}
		n := NewNormalizer(gen, writer)

		result, err := n.Normalize(ctx, "tacos")
		require.NoError(t, err)
		assert.False(t, result.Saved)
		assert.Error(t, result.SaveErr)
		assert.NotNil(t, result.Recipe)
	})

	t.Run("no writer means no persistence and no error", func(t *testing.T) {
		n := NewNormalizer(&stubGenerator{response: tacoResponse}, nil)
		result, err := n.Normalize(ctx, "tacos")
		require.NoError(t, err)
		assert.False(t, result.Saved)
		assert.NoError(t, result.SaveErr)
	})
}
