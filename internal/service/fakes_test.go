package service

import (
	"Guildboard/internal/model"
	"Guildboard/internal/pkg/consts"
	"Guildboard/internal/repository"
	"context"
	"errors"
	"sort"
	"time"
)

// pairKey (userID, postID)
type pairKey [2]uint64

// fakeStore 用内存结构复刻仓储层的读写语义，供服务层测试使用
type fakeStore struct {
	posts      map[uint64]*model.Post
	comments   map[uint64]*model.Comment
	reactions  map[pairKey]time.Time
	markers    map[pairKey]time.Time
	categories map[uint64]*model.Category

	nextPostID    uint64
	nextCommentID uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts:      make(map[uint64]*model.Post),
		comments:   make(map[uint64]*model.Comment),
		reactions:  make(map[pairKey]time.Time),
		markers:    make(map[pairKey]time.Time),
		categories: make(map[uint64]*model.Category),
	}
}

func (f *fakeStore) addCategory(id uint64, name string) {
	f.categories[id] = &model.Category{ID: id, Slug: name, Name: name}
}

func (f *fakeStore) addPost(authorID, categoryID uint64, createdAt time.Time) *model.Post {
	f.nextPostID++
	post := &model.Post{
		ID:             f.nextPostID,
		AuthorID:       authorID,
		CategoryID:     categoryID,
		Title:          "post",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
		LastActivityAt: createdAt,
	}
	f.posts[post.ID] = post
	return post
}

type fakePostRepo struct{ store *fakeStore }

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	f.store.nextPostID++
	post.ID = f.store.nextPostID
	f.store.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id uint64) (*model.Post, error) {
	post, ok := f.store.posts[id]
	if !ok || post.IsDeleted {
		return nil, nil
	}
	return post, nil
}

func (f *fakePostRepo) GetByIDs(_ context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := f.store.posts[id]; ok && !post.IsDeleted {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) UpdateContent(_ context.Context, post *model.Post) error {
	stored, ok := f.store.posts[post.ID]
	if !ok || stored.IsDeleted {
		return nil
	}
	stored.Title = post.Title
	stored.Body = post.Body
	stored.Attachments = post.Attachments
	return nil
}

func (f *fakePostRepo) SoftDelete(_ context.Context, id uint64) error {
	if post, ok := f.store.posts[id]; ok {
		post.IsDeleted = true
	}
	return nil
}

func (f *fakePostRepo) SetPinned(_ context.Context, id uint64, pinned bool) error {
	if post, ok := f.store.posts[id]; ok && !post.IsDeleted {
		post.Pinned = pinned
	}
	return nil
}

func (f *fakePostRepo) ListFeed(_ context.Context, q repository.FeedQuery) ([]*model.Post, int64, error) {
	matched := make([]*model.Post, 0)
	for _, post := range f.store.posts {
		if post.IsDeleted {
			continue
		}
		if q.CategoryID > 0 && post.CategoryID != q.CategoryID {
			continue
		}
		if q.Sort == consts.FeedSortUnread {
			lastRead, ok := f.store.markers[pairKey{q.ViewerID, post.ID}]
			if ok && !lastRead.Before(post.LastActivityAt) {
				continue
			}
		}
		matched = append(matched, post)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		switch q.Sort {
		case consts.FeedSortNew:
			return a.CreatedAt.After(b.CreatedAt)
		case consts.FeedSortTop:
			if a.ReactionsCount != b.ReactionsCount {
				return a.ReactionsCount > b.ReactionsCount
			}
			return a.CreatedAt.After(b.CreatedAt)
		default:
			return a.LastActivityAt.After(b.LastActivityAt)
		}
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func (f *fakePostRepo) RecountEngagement(_ context.Context, id uint64) error {
	post, ok := f.store.posts[id]
	if !ok {
		return nil
	}
	reactions := 0
	for key := range f.store.reactions {
		if key[1] == id {
			reactions++
		}
	}
	comments := 0
	for _, comment := range f.store.comments {
		if comment.PostID == id && !comment.IsDeleted {
			comments++
		}
	}
	post.ReactionsCount = reactions
	post.CommentsCount = comments
	return nil
}

type fakeReactionRepo struct {
	store *fakeStore
	// insertErr 只作用于下一次 Insert，模拟并发对手先插入成功
	insertErr error
}

func (f *fakeReactionRepo) Insert(_ context.Context, reaction *model.Reaction) error {
	if f.insertErr != nil {
		err := f.insertErr
		f.insertErr = nil
		f.store.reactions[pairKey{reaction.UserID, reaction.PostID}] = reaction.CreatedAt
		if post, ok := f.store.posts[reaction.PostID]; ok {
			post.ReactionsCount++
		}
		return err
	}
	key := pairKey{reaction.UserID, reaction.PostID}
	if _, ok := f.store.reactions[key]; ok {
		return errors.New("duplicate entry")
	}
	f.store.reactions[key] = reaction.CreatedAt
	if post, ok := f.store.posts[reaction.PostID]; ok {
		post.ReactionsCount++
	}
	return nil
}

func (f *fakeReactionRepo) Remove(_ context.Context, userID, postID uint64) (bool, error) {
	key := pairKey{userID, postID}
	if _, ok := f.store.reactions[key]; !ok {
		return false, nil
	}
	delete(f.store.reactions, key)
	if post, ok := f.store.posts[postID]; ok && post.ReactionsCount > 0 {
		post.ReactionsCount--
	}
	return true, nil
}

func (f *fakeReactionRepo) Exists(_ context.Context, userID, postID uint64) (bool, error) {
	_, ok := f.store.reactions[pairKey{userID, postID}]
	return ok, nil
}

func (f *fakeReactionRepo) GetLikedSet(_ context.Context, userID uint64, postIDs []uint64) (map[uint64]struct{}, error) {
	liked := make(map[uint64]struct{})
	for _, id := range postIDs {
		if _, ok := f.store.reactions[pairKey{userID, id}]; ok {
			liked[id] = struct{}{}
		}
	}
	return liked, nil
}

func (f *fakeReactionRepo) CountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for key := range f.store.reactions {
		if key[1] == postID {
			count++
		}
	}
	return count, nil
}

type fakeCommentRepo struct{ store *fakeStore }

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	f.store.nextCommentID++
	comment.ID = f.store.nextCommentID
	f.store.comments[comment.ID] = comment
	if post, ok := f.store.posts[comment.PostID]; ok {
		post.CommentsCount++
		if comment.CreatedAt.After(post.LastActivityAt) {
			post.LastActivityAt = comment.CreatedAt
		}
	}
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id uint64) (*model.Comment, error) {
	comment, ok := f.store.comments[id]
	if !ok || comment.IsDeleted {
		return nil, nil
	}
	return comment, nil
}

func (f *fakeCommentRepo) UpdateContent(_ context.Context, id uint64, content string) error {
	if comment, ok := f.store.comments[id]; ok && !comment.IsDeleted {
		comment.Content = content
	}
	return nil
}

func (f *fakeCommentRepo) SoftDelete(_ context.Context, id uint64) error {
	comment, ok := f.store.comments[id]
	if !ok || comment.IsDeleted {
		return nil
	}
	comment.IsDeleted = true
	if post, ok := f.store.posts[comment.PostID]; ok && post.CommentsCount > 0 {
		post.CommentsCount--
	}
	return nil
}

func (f *fakeCommentRepo) ListByPostID(_ context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	matched := make([]*model.Comment, 0)
	for _, comment := range f.store.comments {
		if comment.PostID == postID && !comment.IsDeleted {
			matched = append(matched, comment)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeCommentRepo) CountByPostID(_ context.Context, postID uint64) (int64, error) {
	var count int64
	for _, comment := range f.store.comments {
		if comment.PostID == postID && !comment.IsDeleted {
			count++
		}
	}
	return count, nil
}

type fakeMarkerRepo struct{ store *fakeStore }

func (f *fakeMarkerRepo) Upsert(_ context.Context, marker *model.ReadMarker) error {
	f.store.markers[pairKey{marker.UserID, marker.PostID}] = marker.LastReadAt
	return nil
}

func (f *fakeMarkerRepo) GetMarkers(_ context.Context, userID uint64, postIDs []uint64) (map[uint64]time.Time, error) {
	markers := make(map[uint64]time.Time)
	for _, id := range postIDs {
		if at, ok := f.store.markers[pairKey{userID, id}]; ok {
			markers[id] = at
		}
	}
	return markers, nil
}

type fakeCategoryRepo struct{ store *fakeStore }

func (f *fakeCategoryRepo) List(_ context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0, len(f.store.categories))
	for _, category := range f.store.categories {
		categories = append(categories, category)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	category, ok := f.store.categories[id]
	if !ok {
		return nil, nil
	}
	return category, nil
}

type fakeLocker struct {
	fail     bool
	acquired []string
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (func(), error) {
	if f.fail {
		return nil, errors.New("lock not acquired")
	}
	f.acquired = append(f.acquired, key)
	return func() {}, nil
}

type fakeDirty struct {
	marked []uint64
}

func (f *fakeDirty) MarkDirty(_ context.Context, postID uint64) {
	f.marked = append(f.marked, postID)
}
