package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrUpstream.Code, ErrUpstream.Status, "calcom /availability request failed")

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, http.StatusBadGateway, err.Status)
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	err := FromError(fmt.Errorf("wrapped: %w", errors.New("boom")))
	require.NotNil(t, err)
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestFromErrorUnwrapsTypedErrors(t *testing.T) {
	typed := Clone(ErrInvalidRange, "")
	err := FromError(fmt.Errorf("compute failed: %w", typed))
	require.NotNil(t, err)
	assert.Equal(t, ErrInvalidRange.Code, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "username is required")
	assert.Equal(t, "username is required", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, ErrValidation.Code, clone.Code)
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}
