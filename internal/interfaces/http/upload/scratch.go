// Package upload 管理上传文件的临时落盘与释放
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"quickai-api/pkg/logger"
	"quickai-api/pkg/metrics"
)

// Store 临时文件目录
type Store struct {
	dir string
}

// NewStore 创建临时文件存储，dir 为空时使用系统临时目录
func NewStore(dir string) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Store{dir: dir}
}

// File 已落盘的上传文件，使用完必须 Release
type File struct {
	path     string
	filename string
	mimeType string
	size     int64
	released bool
}

// Save 将 multipart 文件写入临时目录
func (s *Store) Save(fh *multipart.FileHeader) (*File, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare temp dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, scratchName(fh.Filename))
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}

	n, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}

	metrics.ScratchFilesActive.Inc()
	return &File{
		path:     path,
		filename: fh.Filename,
		mimeType: fh.Header.Get("Content-Type"),
		size:     n,
	}, nil
}

// scratchName 生成唯一文件名并保留扩展名
func scratchName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if len(ext) > 10 {
		ext = ""
	}
	return "upload-" + uuid.NewString() + ext
}

// Filename 原始文件名
func (f *File) Filename() string { return f.filename }

// MimeType 声明的媒体类型
func (f *File) MimeType() string { return f.mimeType }

// Size 文件大小
func (f *File) Size() int64 { return f.size }

// Path 临时文件路径
func (f *File) Path() string { return f.path }

// Bytes 读取完整内容
func (f *File) Bytes() ([]byte, error) {
	if f.released {
		return nil, fmt.Errorf("scratch file already released")
	}
	return os.ReadFile(f.path)
}

// Release 删除临时文件，可重复调用
func (f *File) Release(ctx context.Context) {
	if f == nil || f.released {
		return
	}
	f.released = true
	metrics.ScratchFilesActive.Dec()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		logger.Warn(ctx, "failed to remove scratch file", "path", f.path, "error", err.Error())
	}
}
