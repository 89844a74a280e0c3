package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"travelmatch/backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(apperrors.NotFound("gone")))
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(apperrors.Conflict("dup")))
	assert.Equal(t, apperrors.CodeUnknown, apperrors.CodeOf(errors.New("plain")))
}

func TestCodeOf_Wrapped(t *testing.T) {
	inner := apperrors.Forbidden("nope")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(apperrors.InvalidRequest("bad")))
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(apperrors.NotFound("gone")))
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(apperrors.Conflict("dup")))
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatus(apperrors.Unauthorized("who")))
	assert.Equal(t, http.StatusForbidden, apperrors.HTTPStatus(apperrors.Forbidden("no")))
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(errors.New("boom")))
}

func TestInternalPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.Internal("failed to save message", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save message")
	assert.Contains(t, err.Error(), "connection refused")
}
