package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Run("predicates match their own kind only", func(t *testing.T) {
		verr := NewValidationError("bad input")
		uerr := NewUpstreamFormatError("garbage", nil)

		assert.True(t, IsValidationError(verr))
		assert.False(t, IsValidationError(uerr))
		assert.True(t, IsUpstreamFormatError(uerr))
		assert.False(t, IsUpstreamFormatError(verr))
	})

	t.Run("predicates see through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loading recipe: %w", NewStoreReadError(errors.New("io fail")))
		assert.True(t, IsStoreReadError(wrapped))
		assert.False(t, IsStoreWriteError(wrapped))
	})

	t.Run("store errors expose their cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewStoreWriteError(cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewUpstreamFormatError("x", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything else")))
}
