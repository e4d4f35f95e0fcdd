package service

import (
	"Guildboard/internal/model"
	"Guildboard/internal/repository"
	"context"
	"time"
)

type ReadService interface {
	MarkRead(ctx context.Context, userID, postID uint64) error
}

type readServiceImpl struct {
	markerRepo repository.ReadMarkerRepo
	postRepo   repository.PostRepo
}

func NewReadService(markerRepo repository.ReadMarkerRepo, postRepo repository.PostRepo) ReadService {
	return &readServiceImpl{
		markerRepo: markerRepo,
		postRepo:   postRepo,
	}
}

// MarkRead 幂等，重复调用只刷新时间戳
func (s *readServiceImpl) MarkRead(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	return s.markerRepo.Upsert(ctx, &model.ReadMarker{
		PostID:     postID,
		UserID:     userID,
		LastReadAt: time.Now(),
	})
}
