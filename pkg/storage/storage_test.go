// Package storage 对象存储单元测试
package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockUploader(t *testing.T) {
	uploader := NewMockUploader()
	ctx := context.Background()

	t.Run("上传文件", func(t *testing.T) {
		content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
		url, err := uploader.Upload(ctx, "location/test.png", bytes.NewReader(content))
		require.NoError(t, err)
		assert.Contains(t, url, "location/test.png")
		assert.Equal(t, content, uploader.Files["location/test.png"])
	})

	t.Run("删除文件", func(t *testing.T) {
		uploader.Upload(ctx, "location/gone.png", bytes.NewReader([]byte("x")))
		require.NoError(t, uploader.Delete(ctx, "location/gone.png"))
		assert.NotContains(t, uploader.Files, "location/gone.png")
	})

	t.Run("删除不存在的文件不报错", func(t *testing.T) {
		require.NoError(t, uploader.Delete(ctx, "nonexistent.png"))
	})
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	uploader, err := NewLocalUploader(dir, "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("上传并读回", func(t *testing.T) {
		content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
		url, err := uploader.Upload(ctx, "location/2026/01/10/a.png", bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "/uploads/location/2026/01/10/a.png", url)

		data, err := os.ReadFile(filepath.Join(dir, "location", "2026", "01", "10", "a.png"))
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})

	t.Run("删除文件", func(t *testing.T) {
		uploader.Upload(ctx, "location/b.png", bytes.NewReader([]byte("x")))
		require.NoError(t, uploader.Delete(ctx, "location/b.png"))
		_, err := os.Stat(filepath.Join(dir, "location", "b.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("删除不存在的文件不报错", func(t *testing.T) {
		require.NoError(t, uploader.Delete(ctx, "location/nonexistent.png"))
	})

	t.Run("拒绝越出目录的对象键", func(t *testing.T) {
		_, err := uploader.Upload(ctx, "../escape.png", bytes.NewReader([]byte("x")))
		assert.Error(t, err)
	})
}

func TestGenerateObjectKey(t *testing.T) {
	t.Run("生成带前缀的对象键", func(t *testing.T) {
		key := GenerateObjectKey("location", "photo.jpg")

		assert.True(t, strings.HasPrefix(key, "location/"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
		// location/2026/01/10/xxxxx.jpg
		parts := strings.Split(key, "/")
		assert.Len(t, parts, 5)
	})

	t.Run("扩展名转小写", func(t *testing.T) {
		key := GenerateObjectKey("location", "PHOTO.JPG")
		assert.True(t, strings.HasSuffix(key, ".jpg"))
	})

	t.Run("生成唯一键", func(t *testing.T) {
		key1 := GenerateObjectKey("location", "photo.jpg")
		key2 := GenerateObjectKey("location", "photo.jpg")
		assert.NotEqual(t, key1, key2)
	})
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"image.jpg", "image/jpeg"},
		{"image.jpeg", "image/jpeg"},
		{"image.png", "image/png"},
		{"image.gif", "image/gif"},
		{"image.webp", "image/webp"},
		{"unknown.xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetContentType(tt.filename))
		})
	}

	t.Run("大小写不敏感", func(t *testing.T) {
		assert.Equal(t, "image/jpeg", GetContentType("IMAGE.JPG"))
	})
}

func TestValidateImageFile(t *testing.T) {
	t.Run("JPEG 文件", func(t *testing.T) {
		jpegHeader := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
		require.NoError(t, ValidateImageFile("photo.jpg", bytes.NewReader(jpegHeader)))
	})

	t.Run("PNG 文件", func(t *testing.T) {
		pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
		require.NoError(t, ValidateImageFile("image.png", bytes.NewReader(pngHeader)))
	})

	t.Run("不支持的扩展名", func(t *testing.T) {
		err := ValidateImageFile("document.pdf", bytes.NewReader([]byte{}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "不支持的图片格式")
	})

	t.Run("文本伪装成图片", func(t *testing.T) {
		err := ValidateImageFile("fake.jpg", bytes.NewReader([]byte("This is not an image")))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "不是有效的图片")
	})
}

func TestUploaderInterface(t *testing.T) {
	var _ Uploader = (*MockUploader)(nil)
	var _ Uploader = (*LocalUploader)(nil)
	var _ Uploader = (*AliyunUploader)(nil)
}

func TestAliyunUploader_getFullKey(t *testing.T) {
	t.Run("无基础路径", func(t *testing.T) {
		uploader := &AliyunUploader{config: &AliyunConfig{BasePath: ""}}
		assert.Equal(t, "location/a.png", uploader.getFullKey("location/a.png"))
	})

	t.Run("有基础路径", func(t *testing.T) {
		uploader := &AliyunUploader{config: &AliyunConfig{BasePath: "uploads/"}}
		assert.Equal(t, "uploads/location/a.png", uploader.getFullKey("location/a.png"))
	})
}

func TestAliyunUploader_GetURL(t *testing.T) {
	t.Run("使用默认域名", func(t *testing.T) {
		uploader := &AliyunUploader{
			config: &AliyunConfig{
				BucketName: "island-tour",
				Endpoint:   "oss-cn-hangzhou.aliyuncs.com",
			},
		}
		assert.Equal(t,
			"https://island-tour.oss-cn-hangzhou.aliyuncs.com/location/a.png",
			uploader.GetURL("location/a.png"))
	})

	t.Run("使用自定义域名", func(t *testing.T) {
		uploader := &AliyunUploader{
			config: &AliyunConfig{Domain: "https://cdn.example.com/"},
		}
		assert.Equal(t, "https://cdn.example.com/location/a.png", uploader.GetURL("location/a.png"))
	})
}
