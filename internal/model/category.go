package model

import (
	"time"
)

// Category 讨论分类，运行期只读
type Category struct {
	ID          uint64    `gorm:"primaryKey"`
	Slug        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`
	Name        string    `gorm:"type:varchar(64);not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
