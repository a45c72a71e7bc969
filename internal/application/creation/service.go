// Package creation 提供创作记录的追加与查询
package creation

import (
	"context"

	"quickai-api/internal/domain/entity"
	"quickai-api/internal/domain/repository"
	"quickai-api/pkg/logger"
)

// EventPublisher 创作事件发布接口
type EventPublisher interface {
	PublishCreationCreated(ctx context.Context, creation *entity.Creation) (string, error)
}

// Service 创作记录服务
type Service struct {
	repo      repository.CreationRepository
	publisher EventPublisher
}

// NewService 创建创作记录服务，publisher 可为 nil
func NewService(repo repository.CreationRepository, publisher EventPublisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Append 追加创作记录，落库成功后尽力发布事件
func (s *Service) Append(ctx context.Context, creation *entity.Creation) error {
	if err := s.repo.Create(ctx, creation); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}
	if _, err := s.publisher.PublishCreationCreated(ctx, creation); err != nil {
		logger.Warn(ctx, "failed to publish creation event",
			"creation_id", creation.ID,
			"error", err.Error(),
		)
	}
	return nil
}

// ListMine 获取账号自己的创作
func (s *Service) ListMine(ctx context.Context, accountID string, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error) {
	return s.repo.ListByAccount(ctx, accountID, filter, pagination)
}

// ListPublished 获取已发布的创作
func (s *Service) ListPublished(ctx context.Context, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error) {
	return s.repo.ListPublished(ctx, filter, pagination)
}
