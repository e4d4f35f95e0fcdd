package repository

import (
	"Guildboard/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uint64) (*model.Comment, error)
	UpdateContent(ctx context.Context, id uint64, content string) error
	SoftDelete(ctx context.Context, id uint64) error
	ListByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

// Create 评论插入与帖子侧的计数自增、活跃时间推进在同一事务内完成。
// last_activity_at 取 GREATEST 保证只前进不回退。
func (s *CommentRepoImpl) Create(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumns(map[string]interface{}{
				"comments_count":   gorm.Expr("comments_count + 1"),
				"last_activity_at": gorm.Expr("GREATEST(last_activity_at, ?)", comment.CreatedAt),
			}).Error
	})
}

func (s *CommentRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (s *CommentRepoImpl) UpdateContent(ctx context.Context, id uint64, content string) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("content", content).Error
}

// SoftDelete 删除评论并递减帖子计数，活跃时间保持不动
func (s *CommentRepoImpl) SoftDelete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Comment{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var comment model.Comment
		if err := tx.Select("post_id").First(&comment, id).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ? AND comments_count > 0", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
	})
}

// ListByPostID 分页获取帖子的评论，按时间正序
func (s *CommentRepoImpl) ListByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0, limit)
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error
	return count, err
}
