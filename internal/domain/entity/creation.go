// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/lib/pq"
)

// CreationType 创作类型
type CreationType string

const (
	CreationTypeArticle      CreationType = "article"
	CreationTypeBlogTitle    CreationType = "blog_title"
	CreationTypeImage        CreationType = "image"
	CreationTypeResumeReview CreationType = "resume-review"
)

// Creation 创作记录，仅追加
type Creation struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	AccountID string         `json:"account_id" gorm:"type:varchar(128);index;not null"`
	Prompt    string         `json:"prompt" gorm:"type:text;not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Type      CreationType   `json:"type" gorm:"column:type;type:varchar(32);index;not null"`
	Publish   bool           `json:"publish" gorm:"not null;default:false"`
	Likes     pq.StringArray `json:"likes" gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 表名
func (Creation) TableName() string {
	return "creations"
}

// NewCreation 创建创作记录
func NewCreation(accountID, prompt, content string, typ CreationType, publish bool) *Creation {
	return &Creation{
		AccountID: accountID,
		Prompt:    prompt,
		Content:   content,
		Type:      typ,
		Publish:   publish,
		Likes:     pq.StringArray{},
		CreatedAt: time.Now(),
	}
}
