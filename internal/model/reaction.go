package model

import (
	"time"
)

// Reaction 点赞台账行，(post_id, user_id) 唯一，是 liked 状态的事实来源
type Reaction struct {
	PostID    uint64    `gorm:"primaryKey" json:"post_id"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Reaction) TableName() string {
	return "reactions"
}
