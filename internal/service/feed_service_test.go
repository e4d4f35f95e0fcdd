package service

import (
	"context"
	"testing"
	"time"

	"Guildboard/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedFixture() (*fakeStore, FeedService) {
	store := newFakeStore()
	svc := NewFeedService(
		&fakePostRepo{store: store},
		&fakeCategoryRepo{store: store},
		&fakeReactionRepo{store: store},
		&fakeMarkerRepo{store: store},
	)
	return store, svc
}

func TestFetchFeed_DefaultSortPinnedFirst(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	old := store.addPost(1, 0, base.Add(-2*time.Hour))
	recent := store.addPost(1, 0, base.Add(-time.Minute))
	pinned := store.addPost(1, 0, base.Add(-3*time.Hour))
	pinned.Pinned = true

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{})
	require.NoError(t, err)
	require.Len(t, page.List, 3)

	// 置顶帖永远在最前，其余按活跃时间倒序
	assert.Equal(t, pinned.ID, page.List[0].ID)
	assert.Equal(t, recent.ID, page.List[1].ID)
	assert.Equal(t, old.ID, page.List[2].ID)
}

func TestFetchFeed_TopSort(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	low := store.addPost(1, 0, base.Add(-time.Hour))
	low.ReactionsCount = 1
	highOld := store.addPost(1, 0, base.Add(-2*time.Hour))
	highOld.ReactionsCount = 5
	highNew := store.addPost(1, 0, base.Add(-time.Minute))
	highNew.ReactionsCount = 5

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{Sort: "top"})
	require.NoError(t, err)
	require.Len(t, page.List, 3)

	// 同票数按创建时间倒序决胜
	assert.Equal(t, highNew.ID, page.List[0].ID)
	assert.Equal(t, highOld.ID, page.List[1].ID)
	assert.Equal(t, low.ID, page.List[2].ID)
}

func TestFetchFeed_NewSort(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	older := store.addPost(1, 0, base.Add(-time.Hour))
	// 老帖有新评论也不影响 new 排序
	older.LastActivityAt = base
	newer := store.addPost(1, 0, base.Add(-time.Minute))

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{Sort: "new"})
	require.NoError(t, err)
	require.Len(t, page.List, 2)
	assert.Equal(t, newer.ID, page.List[0].ID)
	assert.Equal(t, older.ID, page.List[1].ID)
}

func TestFetchFeed_CategoryFilter(t *testing.T) {
	store, svc := newFeedFixture()
	store.addCategory(3, "general")
	inCat := store.addPost(1, 3, time.Now())
	store.addPost(1, 5, time.Now())

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{CategoryID: 3})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, inCat.ID, page.List[0].ID)

	_, err = svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{CategoryID: 99})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestFetchFeed_Pagination(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	for i := 0; i < 5; i++ {
		store.addPost(1, 0, base.Add(time.Duration(i)*time.Second))
	}

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.List, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)

	page, err = svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.List, 1)
	assert.False(t, page.HasMore)

	// 超出末尾的页返回空列表而不是错误
	page, err = svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page.List)
	assert.False(t, page.HasMore)
}

func TestFetchFeed_UnreadFilter(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	neverRead := store.addPost(1, 0, base.Add(-time.Hour))
	caughtUp := store.addPost(1, 0, base.Add(-time.Hour))
	stale := store.addPost(1, 0, base.Add(-time.Hour))
	stale.LastActivityAt = base // 读过之后又有新评论

	store.markers[pairKey{42, caughtUp.ID}] = base.Add(-time.Hour)
	store.markers[pairKey{42, stale.ID}] = base.Add(-30 * time.Minute)

	page, err := svc.FetchFeed(context.Background(), 42, &dto.FeedQueryDTO{Sort: "unread"})
	require.NoError(t, err)
	require.Len(t, page.List, 2)
	assert.Equal(t, int64(2), page.Total)

	ids := []uint64{page.List[0].ID, page.List[1].ID}
	assert.Contains(t, ids, neverRead.ID)
	assert.Contains(t, ids, stale.ID)
	assert.NotContains(t, ids, caughtUp.ID)
}

func TestFetchFeed_ViewerAnnotations(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	liked := store.addPost(1, 0, base)
	read := store.addPost(1, 0, base.Add(-time.Hour))
	plain := store.addPost(1, 0, base.Add(-2*time.Hour))

	store.reactions[pairKey{42, liked.ID}] = base
	store.markers[pairKey{42, read.ID}] = base

	page, err := svc.FetchFeed(context.Background(), 42, &dto.FeedQueryDTO{})
	require.NoError(t, err)
	require.Len(t, page.List, 3)

	byID := make(map[uint64]*dto.PostDTO)
	for _, item := range page.List {
		byID[item.ID] = item
	}
	assert.True(t, byID[liked.ID].IsLiked)
	assert.False(t, byID[liked.ID].IsRead)
	assert.True(t, byID[read.ID].IsRead)
	assert.False(t, byID[plain.ID].IsLiked)
	assert.False(t, byID[plain.ID].IsRead)
}

func TestFetchFeed_AnonymousSkipsAnnotation(t *testing.T) {
	store, svc := newFeedFixture()
	post := store.addPost(1, 0, time.Now())
	store.reactions[pairKey{42, post.ID}] = time.Now()

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.False(t, page.List[0].IsLiked)
}

func TestFetchFeed_PageSizeClamped(t *testing.T) {
	store, svc := newFeedFixture()
	base := time.Now()
	for i := 0; i < 120; i++ {
		store.addPost(1, 0, base.Add(time.Duration(i)*time.Second))
	}

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, page.List, 100)
	assert.True(t, page.HasMore)
}

func TestFetchFeed_ExcludesDeleted(t *testing.T) {
	store, svc := newFeedFixture()
	post := store.addPost(1, 0, time.Now())
	post.IsDeleted = true
	kept := store.addPost(1, 0, time.Now())

	page, err := svc.FetchFeed(context.Background(), 0, &dto.FeedQueryDTO{})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, kept.ID, page.List[0].ID)
	assert.Equal(t, int64(1), page.Total)
}
