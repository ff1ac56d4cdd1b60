package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Put(context.Background(), "b", strings.NewReader("two")))
	require.NoError(t, s.Put(context.Background(), "a", strings.NewReader("one")))

	assert.Equal(t, []string{"a", "b"}, s.Keys())
	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", string(got))
	_, ok = s.Get("c")
	assert.False(t, ok)
}

func TestStoreHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewStore().Put(ctx, "a", strings.NewReader("x")), context.Canceled)
}
