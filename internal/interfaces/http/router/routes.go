// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h RouterHandlers, authed []gin.HandlerFunc, entitlement gin.HandlerFunc) {
	// 上传回显不需要认证
	v1.POST("/ai/test-upload", h.Generation.TestUpload)

	ai := v1.Group("/ai", authed...)
	ai.Use(entitlement)
	{
		ai.POST("/generate-article", h.Generation.GenerateArticle)
		ai.POST("/generate-blog-title", h.Generation.GenerateBlogTitle)
		ai.POST("/generate-image", h.Generation.GenerateImage)
		ai.POST("/remove-image-background", h.Generation.RemoveBackground)
		ai.POST("/remove-image-object", h.Generation.RemoveObject)
		ai.POST("/resume-review", h.Generation.ReviewResume)
	}

	creations := v1.Group("/creations", authed...)
	{
		creations.GET("", h.Creation.ListMine)
		creations.GET("/published", h.Creation.ListPublished)
	}
}
