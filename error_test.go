package webcat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webcat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webcat.Errorf(webcat.EINVALID, "url %q rejected", "ftp://x")

	assert.Equal(t, webcat.EINVALID, webcat.ErrorCode(err))
	assert.Equal(t, "url \"ftp://x\" rejected", webcat.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("discover: %w", webcat.Errorf(webcat.ENOTFOUND, "gone"))

	assert.Equal(t, webcat.ENOTFOUND, webcat.ErrorCode(err))
	assert.Equal(t, "gone", webcat.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, webcat.EINTERNAL, webcat.ErrorCode(err))
	assert.Equal(t, "boom", webcat.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webcat.ErrorCode(nil))
	assert.Empty(t, webcat.ErrorMessage(nil))
}
