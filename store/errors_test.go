package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("nope")))
	assert.Equal(t, KindConflict, KindOf(Conflict("raced")))
	assert.Equal(t, KindInternal, KindOf(Internal("boom", errors.New("root"))))

	// Kinds survive wrapping.
	wrapped := errors.Wrap(NotFound("gone"), "while loading course")
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	// Foreign errors default to internal.
	assert.Equal(t, KindInternal, KindOf(errors.New("driver exploded")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("failed to load quiz", cause)
	assert.EqualError(t, err, "failed to load quiz: connection reset")
	assert.ErrorContains(t, errors.Cause(err), "connection reset")
}
