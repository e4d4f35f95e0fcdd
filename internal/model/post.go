package model

import (
	"time"
)

type Post struct {
	ID             uint64           `gorm:"primaryKey"`
	AuthorID       uint64           `gorm:"not null;index:idx_author_id" json:"author_id"`
	CategoryID     uint64           `gorm:"not null;default:0;index:idx_category_id" json:"category_id"` // 0表示未分类
	Title          string           `gorm:"type:varchar(255);not null" json:"title"`
	Body           string           `gorm:"type:text" json:"body"`
	Attachments    []AttachmentItem `gorm:"type:json;serializer:json" json:"attachments"`
	Pinned         bool             `gorm:"type:tinyint(1);not null;default:0" json:"pinned"`
	ReactionsCount int              `gorm:"not null;default:0" json:"reactions_count"`
	CommentsCount  int              `gorm:"not null;default:0" json:"comments_count"`
	LastActivityAt time.Time        `gorm:"not null;index:idx_last_activity" json:"last_activity_at"`
	IsDeleted      bool             `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// 关联关系
	Category Category `gorm:"foreignKey:CategoryID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

// AttachmentItem 预上传附件描述符，引擎只透传不做校验
type AttachmentItem struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}
