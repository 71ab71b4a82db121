package exception

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httpkernel/core/response"
)

func TestChainContains(t *testing.T) {
	t.Parallel()

	original := errors.New("original")
	equivalent := errors.New("original")

	assert.True(t, chainContains(original, original))
	assert.True(t, chainContains(fmt.Errorf("wrap: %w", original), original))
	assert.False(t, chainContains(fmt.Errorf("wrap: %w", equivalent), original))
	assert.False(t, chainContains(errors.New("other"), original))
}

func TestChainContainsNonComparable(t *testing.T) {
	t.Parallel()

	notFound := response.ErrNotFound.WithDetails(map[string]any{"id": 1})

	assert.True(t, chainContains(fmt.Errorf("wrap: %w", notFound), notFound))
	assert.False(t, chainContains(fmt.Errorf("wrap: %w", response.ErrNotFound), notFound))
	assert.False(t, chainContains(errors.New("other"), notFound))
}

type detailError struct {
	detail any
}

func (e detailError) Error() string { return fmt.Sprintf("invalid: %v", e.detail) }

func TestChainContainsStructWithUncomparableField(t *testing.T) {
	t.Parallel()

	original := detailError{detail: []string{"a"}}
	secondary := fmt.Errorf("render: %w", detailError{detail: []string{"b"}})

	assert.NotPanics(t, func() {
		assert.False(t, chainContains(secondary, original))
	})
	assert.True(t, chainContains(fmt.Errorf("render: %w", detailError{detail: []string{"a"}}), original))
	assert.True(t, chainContains(detailError{detail: "a"}, detailError{detail: "a"}))
	assert.False(t, chainContains(detailError{detail: "a"}, detailError{detail: []string{"a"}}))
}
