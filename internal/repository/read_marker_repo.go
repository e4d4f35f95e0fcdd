package repository

import (
	"Guildboard/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadMarkerRepo interface {
	Upsert(ctx context.Context, marker *model.ReadMarker) error
	GetMarkers(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]time.Time, error)
}

type ReadMarkerRepoImpl struct {
	db *gorm.DB
}

func NewReadMarkerRepo(db *gorm.DB) ReadMarkerRepo {
	return &ReadMarkerRepoImpl{db: db}
}

// Upsert 同一 (post_id, user_id) 只保留一行，重复调用只刷新时间戳
func (s *ReadMarkerRepoImpl) Upsert(ctx context.Context, marker *model.ReadMarker) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(marker).Error
}

// GetMarkers 批量查出 viewer 在给定帖子集合上的阅读标记
func (s *ReadMarkerRepoImpl) GetMarkers(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]time.Time, error) {
	markers := make(map[uint64]time.Time, len(postIDs))
	if len(postIDs) == 0 {
		return markers, nil
	}

	rows := make([]*model.ReadMarker, 0, len(postIDs))
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		markers[row.PostID] = row.LastReadAt
	}
	return markers, nil
}
