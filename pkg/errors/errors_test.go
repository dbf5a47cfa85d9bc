package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrConflict, "lecturer already assigned")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "lecturer already assigned", err.Message)
	assert.Equal(t, "conflict", ErrConflict.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrValidation, "invalid course payload", map[string]string{"semester": "must be between 1 and 12"})
	assert.Equal(t, map[string]string{"semester": "must be between 1 and 12"}, err.Details)
	assert.Nil(t, ErrValidation.Details)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Wrap(errors.New("deadline"), ErrTimeout.Code, ErrTimeout.Status, "slow")))
	assert.True(t, IsRetryable(fmt.Errorf("list: %w", ErrStoreUnavailable)))
	assert.False(t, IsRetryable(ErrConflict))
}
