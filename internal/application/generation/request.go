package generation

import (
	"quickai-api/internal/domain/entity"
)

// Capability 生成能力
type Capability string

const (
	CapabilityArticle      Capability = "article"
	CapabilityBlogTitle    Capability = "blog-title"
	CapabilityImage        Capability = "image"
	CapabilityBgRemove     Capability = "bg-remove"
	CapabilityObjectRemove Capability = "object-remove"
	CapabilityResumeReview Capability = "resume-review"
)

// Request 一次生成请求，仅在管线执行期间存在
type Request struct {
	Capability  Capability
	Entitlement entity.Entitlement

	Prompt  string
	Length  string
	Publish bool
	Object  string

	// Asset 可为空
	Asset AssetSource
}
