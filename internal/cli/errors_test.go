package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "exit status 3", NewExitError(3).Error())
}

func TestIsExitError(t *testing.T) {
	code, ok := IsExitError(NewExitError(7))
	assert.True(t, ok)
	assert.Equal(t, 7, code)

	code, ok = IsExitError(fmt.Errorf("run failed: %w", NewExitError(2)))
	assert.True(t, ok, "wrapped exit errors are recognized")
	assert.Equal(t, 2, code)

	_, ok = IsExitError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = IsExitError(nil)
	assert.False(t, ok)
}
