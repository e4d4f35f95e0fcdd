package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	pairLockTTL     = 5 * time.Second
	pairLockRetries = 10
)

var ErrLockNotAcquired = errors.New("lock not acquired")

// PairLocker 基于 SETNX 的键级互斥锁，用于串行化同一 (post, user) 上的操作
type PairLocker struct{}

func NewPairLocker() *PairLocker {
	return &PairLocker{}
}

// Acquire 抢锁成功返回释放函数，抢不到或 Redis 不可用返回错误
func (l *PairLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ok, err := TryLock(ctx, key, token, pairLockTTL, pairLockRetries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}
	return func() {
		UnLock(context.Background(), key, token)
	}, nil
}
