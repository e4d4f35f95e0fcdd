package redis

import (
	"Guildboard/internal/pkg/consts"
	"context"
	log "log/slog"
)

// DirtySet 记录计数可能变动的帖子，审计任务据此重算
type DirtySet struct{}

func NewDirtySet() *DirtySet {
	return &DirtySet{}
}

// MarkDirty 尽力而为，失败只记日志不影响主流程
func (d *DirtySet) MarkDirty(ctx context.Context, postID uint64) {
	if err := SAdd(ctx, consts.PostDirtyKey, postID); err != nil {
		log.WarnContext(ctx, "mark post dirty failed", "post_id", postID, "err", err)
	}
}
