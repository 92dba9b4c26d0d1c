package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("missing"), http.StatusBadRequest},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"forbidden sentinel", ErrAuthInvalid, http.StatusForbidden},
		{"wrapped sentinel", fmt.Errorf("ctx: %w", ErrNotFound), http.StatusNotFound},
		{"storage", Storage("save", errors.New("disk full")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, HTTPStatusCode(tc.err))
		})
	}
}

func TestMessageHidesInternalErrors(t *testing.T) {
	require.Equal(t, "Link not found", Message(NotFound("Link not found")))
	require.Equal(t, "Internal server error", Message(Storage("load", errors.New("permission denied"))))
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("save document", cause)
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, cause)
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Newf(ErrValidation, http.StatusBadRequest, "field %s required", "link")
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "field link required", err.Message)
	require.Contains(t, err.Error(), "validation failed")
}
