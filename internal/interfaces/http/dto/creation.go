package dto

import (
	"time"

	"quickai-api/internal/domain/entity"
)

// CreationResponse 创作记录响应
type CreationResponse struct {
	ID        string   `json:"id"`
	AccountID string   `json:"account_id"`
	Prompt    string   `json:"prompt"`
	Content   string   `json:"content"`
	Type      string   `json:"type"`
	Publish   bool     `json:"publish"`
	Likes     []string `json:"likes"`
	CreatedAt string   `json:"created_at"`
}

// ToCreationResponse 转换为响应
func ToCreationResponse(c *entity.Creation) *CreationResponse {
	if c == nil {
		return nil
	}
	likes := []string(c.Likes)
	if likes == nil {
		likes = []string{}
	}
	return &CreationResponse{
		ID:        c.ID,
		AccountID: c.AccountID,
		Prompt:    c.Prompt,
		Content:   c.Content,
		Type:      string(c.Type),
		Publish:   c.Publish,
		Likes:     likes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// ToCreationResponses 批量转换
func ToCreationResponses(items []*entity.Creation) []*CreationResponse {
	out := make([]*CreationResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToCreationResponse(c))
	}
	return out
}

// CreationList 创作列表响应
type CreationList struct {
	Success   bool                `json:"success"`
	Creations []*CreationResponse `json:"creations"`
	Meta      PageMeta            `json:"meta"`
}

// NewCreationList 转换分页结果，保证 creations 非 nil
func NewCreationList(items []*entity.Creation, meta PageMeta) CreationList {
	return CreationList{Success: true, Creations: ToCreationResponses(items), Meta: meta}
}
