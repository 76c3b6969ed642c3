package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Unauthenticated, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{UploadFailed, http.StatusInternalServerError},
		{Internal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(New(tc.kind, "x")))
	}
}

func TestUnclassifiedErrorsAreInternal(t *testing.T) {
	err := errors.New("pq: connection refused")
	assert.Equal(t, Internal, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, Status(err))
	assert.Equal(t, "Internal server error. Please try again later.", Message(err))
}

func TestWrapKeepsKindThroughWrapping(t *testing.T) {
	base := Wrap(Conflict, "Game is already in the wishlist.", errors.New("duplicate key"))
	wrapped := fmt.Errorf("wishlist add: %w", base)

	assert.True(t, Is(wrapped, Conflict))
	assert.Equal(t, http.StatusConflict, Status(wrapped))
	assert.Equal(t, "Game is already in the wishlist.", Message(wrapped))
}
