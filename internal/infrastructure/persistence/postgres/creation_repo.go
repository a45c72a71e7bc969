// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"quickai-api/internal/domain/entity"
	"quickai-api/internal/domain/repository"
	"quickai-api/pkg/tracer"
)

// CreationRepository 创作记录仓储实现
type CreationRepository struct {
	client *Client
}

// NewCreationRepository 创建创作记录仓储
func NewCreationRepository(client *Client) *CreationRepository {
	return &CreationRepository{client: client}
}

// Create 追加创作记录
func (r *CreationRepository) Create(ctx context.Context, creation *entity.Creation) error {
	ctx, span := tracer.Start(ctx, "postgres.CreationRepository.Create")
	defer span.End()

	if creation.ID == "" {
		creation.ID = uuid.NewString()
	}
	if creation.Likes == nil {
		creation.Likes = pq.StringArray{}
	}

	db := r.client.session(ctx)
	if err := db.Create(creation).Error; err != nil {
		tracer.Fail(span, err)
		return fmt.Errorf("failed to create creation: %w", err)
	}
	return nil
}

// ListByAccount 获取账号自己的创作
func (r *CreationRepository) ListByAccount(ctx context.Context, accountID string, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error) {
	ctx, span := tracer.Start(ctx, "postgres.CreationRepository.ListByAccount")
	defer span.End()

	db := r.client.session(ctx).Where("account_id = ?", accountID)
	result, err := r.list(db, filter, pagination)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}
	return result, nil
}

// ListPublished 获取已发布的创作
func (r *CreationRepository) ListPublished(ctx context.Context, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error) {
	ctx, span := tracer.Start(ctx, "postgres.CreationRepository.ListPublished")
	defer span.End()

	db := r.client.session(ctx).Where("publish = ?", true)
	result, err := r.list(db, filter, pagination)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}
	return result, nil
}

func (r *CreationRepository) list(db *gorm.DB, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error) {
	q := db.Model(&entity.Creation{})
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		q = q.Where("type = ANY(?)", pq.Array(types))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count creations: %w", err)
	}

	var items []*entity.Creation
	err := q.Order("created_at DESC").
		Limit(pagination.Limit()).
		Offset(pagination.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list creations: %w", err)
	}

	return repository.NewPagedResult(items, total, pagination), nil
}
