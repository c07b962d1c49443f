package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader 本地磁盘上传器
// 图片落在 baseDir 下，按对象键组织目录，URL 由 baseURL 拼接
type LocalUploader struct {
	baseDir string
	baseURL string
}

// NewLocalUploader 创建本地上传器
func NewLocalUploader(baseDir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}
	return &LocalUploader{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload 写入本地文件
func (u *LocalUploader) Upload(ctx context.Context, objectKey string, reader io.Reader) (string, error) {
	target, err := u.resolve(objectKey)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %v", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("写入文件失败: %v", err)
	}

	return u.GetURL(objectKey), nil
}

// Delete 删除本地文件
func (u *LocalUploader) Delete(ctx context.Context, objectKey string) error {
	target, err := u.resolve(objectKey)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %v", err)
	}
	return nil
}

// GetURL 获取文件 URL
func (u *LocalUploader) GetURL(objectKey string) string {
	return u.baseURL + "/" + objectKey
}

// resolve 拼接并校验目标路径，拒绝越出 baseDir 的键
func (u *LocalUploader) resolve(objectKey string) (string, error) {
	target := filepath.Join(u.baseDir, filepath.FromSlash(objectKey))
	base := filepath.Clean(u.baseDir) + string(filepath.Separator)
	if !strings.HasPrefix(filepath.Clean(target)+string(filepath.Separator), base) {
		return "", fmt.Errorf("非法的对象键: %s", objectKey)
	}
	return target, nil
}
