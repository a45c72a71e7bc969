// Package messaging 将创作记录事件发布到 Redis Stream
package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"quickai-api/internal/domain/entity"
)

// StreamCreations 创作事件流
const StreamCreations = "stream:creations"

// TypeCreationCreated 创作记录新增事件类型
const TypeCreationCreated = "creation.created"

// 流条目字段；type 与 account_id 冗余在外层，消费方无需解码即可过滤
const (
	fieldType      = "type"
	fieldAccountID = "account_id"
	fieldData      = "data"
)

// CreationCreated 创作记录新增事件，不携带 prompt 与 content 本体
type CreationCreated struct {
	CreationID string    `json:"creation_id"`
	AccountID  string    `json:"account_id"`
	Type       string    `json:"type"`
	Publish    bool      `json:"publish"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCreationCreated 由创作记录构造事件
func NewCreationCreated(c *entity.Creation) CreationCreated {
	return CreationCreated{
		CreationID: c.ID,
		AccountID:  c.AccountID,
		Type:       string(c.Type),
		Publish:    c.Publish,
		CreatedAt:  c.CreatedAt,
	}
}

// streamValues 编码为 XADD 字段
func (e CreationCreated) streamValues() (map[string]any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", TypeCreationCreated, err)
	}
	return map[string]any{
		fieldType:      TypeCreationCreated,
		fieldAccountID: e.AccountID,
		fieldData:      string(data),
	}, nil
}

// DecodeCreationCreated 解码流条目字段，供下游消费者使用
func DecodeCreationCreated(values map[string]any) (CreationCreated, error) {
	var e CreationCreated
	if t, _ := values[fieldType].(string); t != TypeCreationCreated {
		return e, fmt.Errorf("unexpected event type %q", t)
	}
	data, ok := values[fieldData].(string)
	if !ok {
		return e, fmt.Errorf("event has no %s field", fieldData)
	}
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return e, fmt.Errorf("failed to decode %s event: %w", TypeCreationCreated, err)
	}
	return e, nil
}
