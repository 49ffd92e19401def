package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation maps to 400", ValidationError("bad input"), http.StatusBadRequest},
		{"not found maps to 404", NotFoundError("missing"), http.StatusNotFound},
		{"capacity maps to 503", CapacityError("full"), http.StatusServiceUnavailable},
		{"internal maps to 500", InternalError("boom", nil), http.StatusInternalServerError},
		{"unknown type maps to 500", &Error{Type: "weird"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("wrapper", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}

func TestWithField(t *testing.T) {
	err := ValidationError("invalid channel").WithField("channel", "").WithField("source", "api")

	assert.Equal(t, "", err.Context["channel"])
	assert.Equal(t, "api", err.Context["source"])

	resp := err.ToResponse()
	assert.Equal(t, "invalid channel", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "api", resp.Context["source"])
}

func TestAsStructuredError(t *testing.T) {
	structured := ValidationError("already structured")
	assert.Same(t, structured, AsStructuredError(structured))

	plain := errors.New("plain")
	wrapped := AsStructuredError(plain)
	require.NotNil(t, wrapped)
	assert.Equal(t, TypeInternal, wrapped.Type)
	assert.ErrorIs(t, wrapped, plain)

	assert.Nil(t, AsStructuredError(nil))
}
