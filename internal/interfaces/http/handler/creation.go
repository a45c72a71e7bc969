package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"quickai-api/internal/domain/entity"
	"quickai-api/internal/domain/repository"
	"quickai-api/internal/interfaces/http/dto"
	"quickai-api/internal/interfaces/http/middleware"
	"quickai-api/pkg/logger"
)

// CreationLister 创作记录查询
type CreationLister interface {
	ListMine(ctx context.Context, accountID string, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error)
	ListPublished(ctx context.Context, filter repository.CreationFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Creation], error)
}

// CreationHandler 创作记录处理器
type CreationHandler struct {
	lister CreationLister
}

// NewCreationHandler 创建创作记录处理器，lister 为 nil 时表示未配置存储
func NewCreationHandler(lister CreationLister) *CreationHandler {
	return &CreationHandler{lister: lister}
}

// ListMine 获取当前账号的创作
// @Router /v1/creations [get]
func (h *CreationHandler) ListMine(c *gin.Context) {
	if h.lister == nil {
		h.empty(c)
		return
	}

	id, _ := middleware.GetIdentity(c)
	page := dto.BindPage(c)
	result, err := h.lister.ListMine(c.Request.Context(), id.AccountID, dto.BindCreationFilter(c), page.Pagination())
	h.respond(c, result, err)
}

// ListPublished 获取已发布的创作
// @Router /v1/creations/published [get]
func (h *CreationHandler) ListPublished(c *gin.Context) {
	if h.lister == nil {
		h.empty(c)
		return
	}

	page := dto.BindPage(c)
	result, err := h.lister.ListPublished(c.Request.Context(), dto.BindCreationFilter(c), page.Pagination())
	h.respond(c, result, err)
}

func (h *CreationHandler) respond(c *gin.Context, result *repository.PagedResult[*entity.Creation], err error) {
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list creations", err)
		dto.InternalError(c, "failed to list creations")
		return
	}
	c.JSON(http.StatusOK, dto.NewCreationList(result.Items,
		dto.NewPageMeta(result.Page, result.PageSize, result.Total, result.TotalPages)))
}

func (h *CreationHandler) empty(c *gin.Context) {
	page := dto.BindPage(c)
	c.JSON(http.StatusOK, dto.NewCreationList(nil, dto.NewPageMeta(page.Page, page.PageSize, 0, 0)))
}
