package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	plain := New(CodeServer, http.StatusBadRequest, "invalid assessment")
	assert.Equal(t, "invalid assessment", plain.Error())

	wrapped := Wrap(errors.New("connection refused"), CodeNetwork, 0, "could not reach the server")
	assert.Equal(t, "could not reach the server: connection refused", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage(cause)
	assert.ErrorIs(t, err, cause)
}

func TestServerMaps401ToUnauthorized(t *testing.T) {
	err := Server(http.StatusUnauthorized, "token expired")
	assert.Equal(t, CodeUnauth, err.Code)
	assert.Equal(t, http.StatusUnauthorized, err.Status)

	other := Server(http.StatusInternalServerError, "boom")
	assert.Equal(t, CodeServer, other.Code)
}

func TestFromError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, FromError(nil))
	})

	t.Run("typed error is returned as-is", func(t *testing.T) {
		orig := Validation("Please enter a title")
		assert.Same(t, orig, FromError(orig))
	})

	t.Run("wrapped typed error is unwrapped", func(t *testing.T) {
		orig := Server(http.StatusNotFound, "not found")
		wrapped := fmt.Errorf("load assessment: %w", orig)
		assert.Same(t, orig, FromError(wrapped))
	})

	t.Run("plain error becomes a network error", func(t *testing.T) {
		got := FromError(errors.New("dial tcp: timeout"))
		require.NotNil(t, got)
		assert.Equal(t, CodeNetwork, got.Code)
	})
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(Server(http.StatusUnauthorized, "")))
	assert.False(t, IsUnauthorized(Server(http.StatusForbidden, "")))
	assert.False(t, IsUnauthorized(nil))
}

func TestClone(t *testing.T) {
	orig := Server(http.StatusInternalServerError, "")

	overridden := Clone(orig, "Login failed")
	assert.Equal(t, "Login failed", overridden.Message)
	assert.Empty(t, orig.Message)

	kept := Clone(Server(http.StatusBadRequest, "server said no"), "")
	assert.Equal(t, "server said no", kept.Message)
}
