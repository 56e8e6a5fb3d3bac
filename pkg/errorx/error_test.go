package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	dup := NewError(http.StatusUnprocessableEntity, "already favourited")

	assert.Equal(t, http.StatusUnprocessableEntity, CodeOf(dup))
	assert.Equal(t, http.StatusUnprocessableEntity, CodeOf(fmt.Errorf("favourite: %w", dup)))
	assert.Equal(t, http.StatusInternalServerError, CodeOf(errors.New("driver: bad connection")))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewError(http.StatusNotFound, "status not found")))
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", NewError(http.StatusUnprocessableEntity, "dup"))))
	assert.False(t, IsValidation(NewError(http.StatusInternalServerError, "stat row missing")))
	assert.False(t, IsValidation(errors.New("io timeout")))
}
