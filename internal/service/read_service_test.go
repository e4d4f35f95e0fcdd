package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkRead(t *testing.T) {
	store := newFakeStore()
	svc := NewReadService(&fakeMarkerRepo{store: store}, &fakePostRepo{store: store})
	post := store.addPost(1, 0, time.Now())

	require.NoError(t, svc.MarkRead(context.Background(), 42, post.ID))
	first, ok := store.markers[pairKey{42, post.ID}]
	require.True(t, ok)

	// 幂等：重复标记只刷新时间戳，不产生第二条标记
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.MarkRead(context.Background(), 42, post.ID))
	second := store.markers[pairKey{42, post.ID}]
	assert.True(t, second.After(first))
	assert.Len(t, store.markers, 1)
}

func TestMarkRead_PostNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewReadService(&fakeMarkerRepo{store: store}, &fakePostRepo{store: store})

	err := svc.MarkRead(context.Background(), 42, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
