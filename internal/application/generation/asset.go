package generation

import (
	"fmt"
	"net/http"
	"strings"

	apperrors "quickai-api/pkg/errors"
)

// MediaTypes 可接受的媒体类型集合，以 "/" 结尾的条目按前缀匹配
type MediaTypes []string

// Accepts 是否接受该媒体类型
func (m MediaTypes) Accepts(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	for _, t := range m {
		if strings.HasSuffix(t, "/") {
			if strings.HasPrefix(mimeType, t) {
				return true
			}
			continue
		}
		if mimeType == t {
			return true
		}
	}
	return false
}

var (
	mediaImages        = MediaTypes{"image/"}
	mediaImagesAndPDF  = MediaTypes{"image/", "application/pdf"}
	mediaReviewableDoc = MediaTypes{"application/pdf"}
)

// AssetPolicy 上传资源校验规则
type AssetPolicy struct {
	Accept  MediaTypes
	MaxSize int64
	// RejectTypeMessage 媒体类型不符时的提示
	RejectTypeMessage string
}

// Check 校验资源，失败时返回带错误码的 AppError
func (p AssetPolicy) Check(asset AssetSource) error {
	if asset == nil {
		return apperrors.New(apperrors.CodeAssetMissing, "no asset uploaded")
	}
	if !p.Accept.Accepts(asset.MimeType()) {
		msg := p.RejectTypeMessage
		if msg == "" {
			msg = fmt.Sprintf("unsupported media type %q", asset.MimeType())
		}
		return apperrors.New(apperrors.CodeAssetRejected, msg)
	}
	if p.MaxSize > 0 && asset.Size() > p.MaxSize {
		return apperrors.New(apperrors.CodeAssetRejected,
			fmt.Sprintf("file size exceeds %dMB limit", p.MaxSize>>20))
	}
	return nil
}

// rejection 将校验错误转换为结果
func rejection(err error, content string) Result {
	appErr := apperrors.AsAppError(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusBadRequest
	}
	return Rejected(status, appErr.Message, content)
}

// readAsset 读取资源字节；读取失败属于未预期错误
func readAsset(asset AssetSource) ([]byte, error) {
	data, err := asset.Bytes()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeUnexpectedPipelineError, "failed to read uploaded asset")
	}
	return data, nil
}
