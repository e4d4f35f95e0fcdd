package model

import (
	"time"
)

// ReadMarker 每个 (post_id, user_id) 至多一条，记录最后阅读时间
type ReadMarker struct {
	PostID     uint64    `gorm:"primaryKey" json:"post_id"`
	UserID     uint64    `gorm:"primaryKey;index:idx_user_id" json:"user_id"`
	LastReadAt time.Time `gorm:"not null" json:"last_read_at"`
}

func (ReadMarker) TableName() string {
	return "read_markers"
}
