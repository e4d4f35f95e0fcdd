package repository

import (
	"Guildboard/internal/model"
	"Guildboard/internal/pkg/consts"
	"context"
	"errors"

	"gorm.io/gorm"
)

// FeedQuery 信息流查询条件
type FeedQuery struct {
	CategoryID uint64
	Sort       string
	ViewerID   uint64
	Limit      int
	Offset     int
}

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdateContent(ctx context.Context, post *model.Post) error
	SoftDelete(ctx context.Context, id uint64) error
	SetPinned(ctx context.Context, id uint64, pinned bool) error
	ListFeed(ctx context.Context, q FeedQuery) ([]*model.Post, int64, error)
	RecountEngagement(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) Create(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateContent 只更新作者可编辑的内容字段，计数与活跃时间不在此路径变更
func (s *PostRepoImpl) UpdateContent(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND is_deleted = ?", post.ID, false).
		Updates(map[string]interface{}{
			"title":       post.Title,
			"body":        post.Body,
			"attachments": post.Attachments,
		}).Error
}

func (s *PostRepoImpl) SoftDelete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (s *PostRepoImpl) SetPinned(ctx context.Context, id uint64, pinned bool) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn("pinned", pinned).Error
}

// ListFeed 返回一页帖子与过滤后的总数，total 在 unread 模式下只统计符合条件的帖子
func (s *PostRepoImpl) ListFeed(ctx context.Context, q FeedQuery) ([]*model.Post, int64, error) {
	var total int64
	if err := s.feedScope(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*model.Post, 0, q.Limit)
	err := s.feedScope(ctx, q).
		Order(FeedOrder(q.Sort)).
		Limit(q.Limit).Offset(q.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// feedScope 组装信息流的公共查询范围，unread 通过反连接 read_markers 下推到查询层
func (s *PostRepoImpl) feedScope(ctx context.Context, q FeedQuery) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("posts.is_deleted = ?", false)

	if q.CategoryID > 0 {
		db = db.Where("posts.category_id = ?", q.CategoryID)
	}

	if q.Sort == consts.FeedSortUnread {
		db = db.
			Joins("LEFT JOIN read_markers rm ON rm.post_id = posts.id AND rm.user_id = ?", q.ViewerID).
			Where("rm.post_id IS NULL OR rm.last_read_at < posts.last_activity_at")
	}
	return db
}

// FeedOrder 各排序模式的排序子句，置顶帖在所有模式下都排在最前
func FeedOrder(sort string) string {
	switch sort {
	case consts.FeedSortNew:
		return "posts.pinned DESC, posts.created_at DESC"
	case consts.FeedSortTop:
		return "posts.pinned DESC, posts.reactions_count DESC, posts.created_at DESC"
	default:
		// default 与 unread 共用活跃时间排序
		return "posts.pinned DESC, posts.last_activity_at DESC"
	}
}

// RecountEngagement 从台账与评论行重算冗余计数，供审计任务兜底
func (s *PostRepoImpl) RecountEngagement(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Exec(`
		UPDATE posts SET
			reactions_count = (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id),
			comments_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.is_deleted = 0)
		WHERE posts.id = ?`, id).Error
}
