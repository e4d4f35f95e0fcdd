package job

import (
	"Guildboard/internal/pkg/consts"
	"Guildboard/internal/pkg/logger"
	"Guildboard/internal/pkg/redis"
	"Guildboard/internal/repository"
	"context"
	log "log/slog"
	"strconv"

	"github.com/google/uuid"
)

// CounterAuditJob 周期性地把脏帖子的冗余计数与台账/评论行对账，
// 保证计数写入万一发生偏差时最终收敛。
type CounterAuditJob struct {
	postRepo repository.PostRepo
}

func NewCounterAuditJob(postRepo repository.PostRepo) *CounterAuditJob {
	return &CounterAuditJob{postRepo: postRepo}
}

func (s *CounterAuditJob) Run() {
	traceID := "job-audit-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.PostDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.PostDirtyKey, processingKey); err != nil {
		// 脏集合为空时 RENAME 会报错，属于正常情况
		return
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get post dirty set error", "err", err)
		return
	}

	recounted := 0
	for _, member := range members {
		postID, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			log.WarnContext(ctx, "invalid post id in dirty set", "member", member)
			continue
		}

		if err := s.postRepo.RecountEngagement(ctx, postID); err != nil {
			log.ErrorContext(ctx, "recount post engagement error", "post_id", postID, "err", err)
			continue
		}
		recounted++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete post processing set error", "err", err)
	}

	log.InfoContext(ctx, "counter audit finished",
		"dirty_count", len(members),
		"recounted", recounted)
}
