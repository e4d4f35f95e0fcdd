package repository

import (
	"Guildboard/internal/model"
	"context"

	"gorm.io/gorm"
)

type ReactionRepo interface {
	Insert(ctx context.Context, reaction *model.Reaction) error
	Remove(ctx context.Context, userID, postID uint64) (bool, error)
	Exists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikedSet(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]struct{}, error)
	CountByPostID(ctx context.Context, postID uint64) (int64, error)
}

type ReactionRepoImpl struct {
	db *gorm.DB
}

func NewReactionRepo(db *gorm.DB) ReactionRepo {
	return &ReactionRepoImpl{db: db}
}

// Insert 台账行插入与计数自增在同一事务内完成，计数用表达式自增而非读改写
func (s *ReactionRepoImpl) Insert(ctx context.Context, reaction *model.Reaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reaction).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", reaction.PostID).
			UpdateColumn("reactions_count", gorm.Expr("reactions_count + 1")).Error
	})
}

// Remove 返回是否确实删除了台账行，没有行时不动计数
func (s *ReactionRepoImpl) Remove(ctx context.Context, userID, postID uint64) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.Reaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Post{}).
			Where("id = ? AND reactions_count > 0", postID).
			UpdateColumn("reactions_count", gorm.Expr("reactions_count - 1")).Error
	})
	return removed, err
}

func (s *ReactionRepoImpl) Exists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetLikedSet 批量查出 viewer 在给定帖子集合中点过赞的帖子
func (s *ReactionRepoImpl) GetLikedSet(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]struct{}, error) {
	liked := make(map[uint64]struct{}, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = struct{}{}
	}
	return liked, nil
}

func (s *ReactionRepoImpl) CountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
