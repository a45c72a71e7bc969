// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quickai-api/internal/application/generation"
	"quickai-api/internal/interfaces/http/dto"
	"quickai-api/internal/interfaces/http/middleware"
	"quickai-api/internal/interfaces/http/upload"
	"quickai-api/pkg/logger"
)

// Generator 生成管线
type Generator interface {
	Generate(ctx context.Context, req *generation.Request) generation.Result
}

// GenerationHandler AI 生成处理器
type GenerationHandler struct {
	generator Generator
	store     *upload.Store
}

// NewGenerationHandler 创建生成处理器
func NewGenerationHandler(generator Generator, store *upload.Store) *GenerationHandler {
	return &GenerationHandler{generator: generator, store: store}
}

// GenerateArticle 生成文章
// @Router /v1/ai/generate-article [post]
func (h *GenerationHandler) GenerateArticle(c *gin.Context) {
	var req dto.GenerateArticleRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.run(c, &generation.Request{
		Capability: generation.CapabilityArticle,
		Prompt:     req.Prompt,
		Length:     req.LengthString(),
	})
}

// GenerateBlogTitle 生成博客标题
// @Router /v1/ai/generate-blog-title [post]
func (h *GenerationHandler) GenerateBlogTitle(c *gin.Context) {
	var req dto.GenerateBlogTitleRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.run(c, &generation.Request{
		Capability: generation.CapabilityBlogTitle,
		Prompt:     req.Prompt,
	})
}

// GenerateImage 生成图片
// @Router /v1/ai/generate-image [post]
func (h *GenerationHandler) GenerateImage(c *gin.Context) {
	var req dto.GenerateImageRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	h.run(c, &generation.Request{
		Capability: generation.CapabilityImage,
		Prompt:     req.Prompt,
		Publish:    req.Publish,
	})
}

// RemoveBackground 移除图片背景
// @Router /v1/ai/remove-image-background [post]
func (h *GenerationHandler) RemoveBackground(c *gin.Context) {
	h.runWithUpload(c, "image", &generation.Request{
		Capability: generation.CapabilityBgRemove,
	})
}

// RemoveObject 移除图片中的物体
// @Router /v1/ai/remove-image-object [post]
func (h *GenerationHandler) RemoveObject(c *gin.Context) {
	h.runWithUpload(c, "image", &generation.Request{
		Capability: generation.CapabilityObjectRemove,
		Object:     c.PostForm("object"),
	})
}

// ReviewResume 简历点评
// @Router /v1/ai/resume-review [post]
func (h *GenerationHandler) ReviewResume(c *gin.Context) {
	h.runWithUpload(c, "resume", &generation.Request{
		Capability: generation.CapabilityResumeReview,
	})
}

// TestUpload 上传回显，用于排查上传链路
// @Router /v1/ai/test-upload [post]
func (h *GenerationHandler) TestUpload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		dto.Fail(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := h.store.Save(fh)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to save upload", err)
		dto.InternalError(c, "failed to store upload")
		return
	}
	defer file.Release(c.Request.Context())

	c.JSON(http.StatusOK, dto.UploadEchoResponse{
		Success:  true,
		Message:  "File uploaded successfully",
		Filename: file.Filename(),
		Size:     file.Size(),
		Mimetype: file.MimeType(),
	})
}

// runWithUpload 落盘上传文件后执行管线，任何路径都会释放临时文件
func (h *GenerationHandler) runWithUpload(c *gin.Context, field string, req *generation.Request) {
	ctx := c.Request.Context()

	fh, err := c.FormFile(field)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			logger.Debug(ctx, "no usable upload", "field", field, "error", err.Error())
		}
		h.run(c, req)
		return
	}

	file, err := h.store.Save(fh)
	if err != nil {
		logger.Error(ctx, "failed to save upload", err, "field", field)
		c.JSON(http.StatusInternalServerError, dto.NewEnvelope(generation.Unexpected(err)))
		return
	}
	defer file.Release(ctx)

	req.Asset = file
	h.run(c, req)
}

func (h *GenerationHandler) run(c *gin.Context, req *generation.Request) {
	req.Entitlement = middleware.GetEntitlement(c)
	res := h.generator.Generate(c.Request.Context(), req)
	c.JSON(res.Status, dto.NewEnvelope(res))
}

// bindOptionalJSON 空请求体按零值处理，格式错误返回 400
func bindOptionalJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		dto.Fail(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
