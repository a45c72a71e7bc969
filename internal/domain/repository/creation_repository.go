// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"quickai-api/internal/domain/entity"
)

// CreationFilter 创作列表过滤条件
type CreationFilter struct {
	// Types 为空表示不过滤
	Types []entity.CreationType
}

// CreationRepository 创作记录仓储接口
type CreationRepository interface {
	// Create 追加创作记录
	Create(ctx context.Context, creation *entity.Creation) error

	// ListByAccount 获取账号自己的创作
	ListByAccount(ctx context.Context, accountID string, filter CreationFilter, pagination Pagination) (*PagedResult[*entity.Creation], error)

	// ListPublished 获取已发布的创作
	ListPublished(ctx context.Context, filter CreationFilter, pagination Pagination) (*PagedResult[*entity.Creation], error)
}
