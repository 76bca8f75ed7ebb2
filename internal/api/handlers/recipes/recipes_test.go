package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

type stubWriter struct {
	err error
}

func (s *stubWriter) PutRecipe(ctx context.Context, rec *recipe.Recipe) error {
	return s.err
}

func postNormalize(h *Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/normalize", h.HandleNormalize)

	req := httptest.NewRequest(http.MethodPost, "/normalize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleNormalize(t *testing.T) {
	goodResponse := `Here you go:
{"title": "Lentil Soup", "sections": [{"title": "Ingredients", "type": "ingredients", "items": ["1 cup lentils"]}]}`

	t.Run("success returns filename, recipe and save status", func(t *testing.T) {
		h := NewHandler(recipe.NewNormalizer(&stubGenerator{response: goodResponse}, &stubWriter{}), nil)
		w := postNormalize(h, `{"recipeText": "lentil soup with garlic"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp NormalizeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "lentil-soup.json", resp.Filename)
		assert.Equal(t, "lentil-soup", resp.Recipe.ID)
		assert.True(t, resp.SavedToStore)
	})

	t.Run("upstream garbage maps to 500", func(t *testing.T) {
		h := NewHandler(recipe.NewNormalizer(&stubGenerator{response: "no json here"}, nil), nil)
		w := postNormalize(h, `{"recipeText": "anything"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "JSON")
	})

	t.Run("generator outage maps to 500", func(t *testing.T) {
		h := NewHandler(recipe.NewNormalizer(&stubGenerator{err: errors.New("down")}, nil), nil)
		w := postNormalize(h, `{"recipeText": "anything"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("failed store write maps to its own 500", func(t *testing.T) {
		writer := &stubWriter{err: errors.New("disk full")}
		h := NewHandler(recipe.NewNormalizer(&stubGenerator{response: goodResponse}, writer), nil)
		w := postNormalize(h, `{"recipeText": "lentil soup"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "could not be saved")
		assert.Equal(t, "lentil-soup.json", body["filename"])
	})
}
