package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("pet 3: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("email: %w", ErrConflict), http.StatusConflict},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Status(c.err), "err=%v", c.err)
	}
}

func TestMessage_HidesInternalErrors(t *testing.T) {
	assert.Equal(t, "internal error", Message(errors.New("dial tcp: refused")))
	assert.Equal(t, "email: already exists", Message(fmt.Errorf("email: %w", ErrConflict)))
}
