package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/models"
)

func TestMemoryPreviewStoreRoundTrip(t *testing.T) {
	s := NewMemoryPreviewStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "abc", Preview{OwnerID: 3, FileName: "r.pdf", HTML: "<p>x</p>"}))

	p, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint(3), p.OwnerID)
	assert.Equal(t, "<p>x</p>", p.HTML)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryPreviewStoreExpires(t *testing.T) {
	s := NewMemoryPreviewStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "abc", Preview{HTML: "<p>x</p>"}))

	now = now.Add(59 * time.Second)
	_, err := s.Get(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
