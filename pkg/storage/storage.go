// Package storage 对象存储
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader 上传器接口
type Uploader interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader) (string, error)
	Delete(ctx context.Context, objectKey string) error
	GetURL(objectKey string) string
}

// GenerateObjectKey 生成对象键
// 前缀/日期/随机文件名，保留原始扩展名
func GenerateObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	now := time.Now()
	return fmt.Sprintf("%s/%s/%s%s",
		prefix,
		now.Format("2006/01/02"),
		uuid.New().String(),
		ext,
	)
}

// GetContentType 根据文件扩展名获取 Content-Type
func GetContentType(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
	}

	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ValidateImageFile 验证图片文件
// 扩展名白名单之外直接拒绝，再读文件头判断真实类型
func ValidateImageFile(filename string, reader io.Reader) error {
	ext := strings.ToLower(path.Ext(filename))
	validExts := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
	if !validExts[ext] {
		return fmt.Errorf("不支持的图片格式: %s", ext)
	}

	header := make([]byte, 512)
	n, err := reader.Read(header)
	if err != nil && err != io.EOF {
		return fmt.Errorf("读取文件失败: %v", err)
	}

	contentType := http.DetectContentType(header[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("文件不是有效的图片")
	}

	return nil
}

// MockUploader 模拟上传器（用于开发/测试）
type MockUploader struct {
	Files map[string][]byte
}

// NewMockUploader 创建模拟上传器
func NewMockUploader() *MockUploader {
	return &MockUploader{
		Files: make(map[string][]byte),
	}
}

// Upload 模拟上传
func (u *MockUploader) Upload(ctx context.Context, objectKey string, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	u.Files[objectKey] = data
	return u.GetURL(objectKey), nil
}

// Delete 模拟删除
func (u *MockUploader) Delete(ctx context.Context, objectKey string) error {
	delete(u.Files, objectKey)
	return nil
}

// GetURL 获取模拟 URL
func (u *MockUploader) GetURL(objectKey string) string {
	return fmt.Sprintf("https://mock-storage.example.com/%s", objectKey)
}
