// Package document 提供文档文本抽取
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor PDF 纯文本抽取
type PDFExtractor struct{}

// NewPDFExtractor 创建 PDF 抽取器
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText 抽取全部页面的纯文本，损坏的文件返回错误
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	// 第三方解析器遇到畸形输入可能 panic
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse pdf: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
