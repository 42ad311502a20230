package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("doctor not found"), http.StatusNotFound},
		{"validation", NewValidationError("age is required"), http.StatusBadRequest},
		{"forbidden", NewForbiddenError("camera denied", nil), http.StatusForbidden},
		{"cancelled", NewCancelledError("recording stopped", nil), http.StatusRequestTimeout},
		{"external", NewExternalError("ml api down", stderrors.New("dial tcp")), http.StatusBadGateway},
		{"wrapped", fmt.Errorf("predict: %w", NewValidationError("no symptoms")), http.StatusBadRequest},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewExternalError("Unable to connect", stderrors.New("refused")))
	assert.Equal(t, "Unable to connect", PublicMessage(err))
	assert.Equal(t, "internal server error", PublicMessage(stderrors.New("secret detail")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewExternalError("ml api", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrorTypeExternal))
	assert.False(t, Is(err, ErrorTypeNotFound))
	assert.Equal(t, "EXTERNAL: ml api: connection refused", err.Error())
}
