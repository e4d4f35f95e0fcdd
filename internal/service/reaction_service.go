package service

import (
	"Guildboard/internal/api/dto"
	"Guildboard/internal/model"
	"Guildboard/internal/pkg/consts"
	"Guildboard/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// PairLocker 串行化同一 (post, user) 键上的操作
type PairLocker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// DirtyMarker 把计数可能变动的帖子记入审计集合
type DirtyMarker interface {
	MarkDirty(ctx context.Context, postID uint64)
}

type ReactionService interface {
	ToggleReaction(ctx context.Context, userID, postID uint64) (*dto.ReactionStateDTO, error)
}

type reactionServiceImpl struct {
	reactionRepo repository.ReactionRepo
	postRepo     repository.PostRepo
	locker       PairLocker
	dirty        DirtyMarker
}

func NewReactionService(
	reactionRepo repository.ReactionRepo,
	postRepo repository.PostRepo,
	locker PairLocker,
	dirty DirtyMarker,
) ReactionService {
	return &reactionServiceImpl{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		locker:       locker,
		dirty:        dirty,
	}
}

// ToggleReaction 有则删无则插，台账行与计数调整在仓储层同一事务内完成。
// 同一 (post, user) 的并发切换先抢键锁，漏网的竞态靠唯一键约束兜底并内部重试一次。
func (s *reactionServiceImpl) ToggleReaction(ctx context.Context, userID, postID uint64) (*dto.ReactionStateDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	key := consts.ReactionToggleLock + strconv.FormatUint(postID, 10) + ":" + strconv.FormatUint(userID, 10)
	release, err := s.locker.Acquire(ctx, key)
	if err != nil {
		return nil, ErrActionConflict
	}
	defer release()

	liked, err := s.toggleOnce(ctx, userID, postID)
	if errors.Is(err, ErrActionConflict) {
		liked, err = s.toggleOnce(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}
	s.dirty.MarkDirty(ctx, postID)

	// 回读帖子拿事务提交后的权威计数
	fresh, err := s.postRepo.GetByID(ctx, postID)
	if err != nil || fresh == nil {
		return nil, UnExpectedError
	}
	return &dto.ReactionStateDTO{
		Liked:          liked,
		ReactionsCount: fresh.ReactionsCount,
	}, nil
}

func (s *reactionServiceImpl) toggleOnce(ctx context.Context, userID, postID uint64) (bool, error) {
	exists, err := s.reactionRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if exists {
		removed, err := s.reactionRepo.Remove(ctx, userID, postID)
		if err != nil {
			return false, err
		}
		if !removed {
			// 行在检查后被并发删掉了
			return false, ErrActionConflict
		}
		return false, nil
	}

	err = s.reactionRepo.Insert(ctx, &model.Reaction{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if isDuplicateError(err) {
			return false, ErrActionConflict
		}
		return false, err
	}
	return true, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
