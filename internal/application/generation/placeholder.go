package generation

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// PlaceholderStrategy 本地构造替代图片，不依赖网络
type PlaceholderStrategy interface {
	// UploadSlot 未上传图片时的占位图
	UploadSlot() string
	// Echo 原样回显上传图片
	Echo(image []byte, mimeType string) string
	// Badge 在上传图片上叠加 mock 标注
	Badge(image []byte, mimeType, label string) string
}

// SVGPlaceholder 以 SVG data URL 构造占位图
type SVGPlaceholder struct{}

// NewSVGPlaceholder 创建 SVG 占位策略
func NewSVGPlaceholder() *SVGPlaceholder {
	return &SVGPlaceholder{}
}

const uploadSlotSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600">` +
	`<rect width="100%" height="100%" fill="#eee"/>` +
	`<text x="50%" y="50%" text-anchor="middle" dominant-baseline="middle" font-family="Arial" font-size="20" fill="#666">Upload an image first</text>` +
	`</svg>`

const badgeSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="800" viewBox="0 0 1200 800" preserveAspectRatio="xMidYMid meet">
  <defs/>
  <image href="%s" x="0" y="0" width="100%%" height="100%%" preserveAspectRatio="xMidYMid meet"/>
  <rect x="16" y="16" width="360" height="44" rx="8" ry="8" fill="black" opacity="0.45"/>
  <text x="36" y="46" fill="white" font-family="Arial, Helvetica, sans-serif" font-size="22">%s</text>
</svg>`

var svgEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;", "&", "&amp;", `"`, "&quot;")

// UploadSlot 实现 PlaceholderStrategy
func (SVGPlaceholder) UploadSlot() string {
	return svgDataURL(uploadSlotSVG)
}

// Echo 实现 PlaceholderStrategy
func (SVGPlaceholder) Echo(image []byte, mimeType string) string {
	return DataURL(mimeType, image)
}

// Badge 实现 PlaceholderStrategy
func (SVGPlaceholder) Badge(image []byte, mimeType, label string) string {
	svg := fmt.Sprintf(badgeSVG, DataURL(mimeType, image), svgEscaper.Replace(label))
	return svgDataURL(svg)
}

// DataURL 构造 base64 data URL
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func svgDataURL(svg string) string {
	return DataURL("image/svg+xml", []byte(svg))
}
