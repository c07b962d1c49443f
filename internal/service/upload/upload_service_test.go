// Package upload 上传服务单元测试
package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/pkg/storage"
)

// makeFileHeader 构造 multipart 表单文件头
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestUploadService_UploadImage(t *testing.T) {
	uploader := storage.NewMockUploader()
	svc := NewUploadService(uploader)
	ctx := context.Background()

	resp, err := svc.UploadImage(ctx, &UploadImageRequest{
		File:     makeFileHeader(t, "beach.png", pngHeader),
		Category: "location",
	})
	require.NoError(t, err)
	assert.Equal(t, "beach.png", resp.FileName)
	assert.Equal(t, int64(len(pngHeader)), resp.Size)
	assert.Contains(t, resp.URL, "location/")

	// 文件内容落入存储
	require.Len(t, uploader.Files, 1)
	for key, data := range uploader.Files {
		assert.True(t, strings.HasPrefix(key, "location/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
		assert.Equal(t, pngHeader, data)
	}
}

func TestUploadService_UploadImage_DefaultCategory(t *testing.T) {
	uploader := storage.NewMockUploader()
	svc := NewUploadService(uploader)

	resp, err := svc.UploadImage(context.Background(), &UploadImageRequest{
		File: makeFileHeader(t, "pic.png", pngHeader),
	})
	require.NoError(t, err)
	assert.Contains(t, resp.URL, "images/")
}

func TestUploadService_UploadImage_MissingFile(t *testing.T) {
	svc := NewUploadService(storage.NewMockUploader())

	_, err := svc.UploadImage(context.Background(), &UploadImageRequest{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
}

func TestUploadService_UploadImage_TooLarge(t *testing.T) {
	svc := NewUploadService(storage.NewMockUploader())

	big := make([]byte, MaxImageSize+1)
	copy(big, pngHeader)
	_, err := svc.UploadImage(context.Background(), &UploadImageRequest{
		File: makeFileHeader(t, "huge.png", big),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
}

func TestUploadService_UploadImage_InvalidFormat(t *testing.T) {
	uploader := storage.NewMockUploader()
	svc := NewUploadService(uploader)

	// 扩展名不在白名单
	_, err := svc.UploadImage(context.Background(), &UploadImageRequest{
		File: makeFileHeader(t, "doc.pdf", []byte("%PDF-1.4")),
	})
	assert.Error(t, err)

	// 文本伪装成图片
	_, err = svc.UploadImage(context.Background(), &UploadImageRequest{
		File: makeFileHeader(t, "fake.jpg", []byte("plain text content")),
	})
	assert.Error(t, err)

	assert.Empty(t, uploader.Files)
}
