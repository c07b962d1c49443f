// Package upload 提供图片上传服务
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/common/metrics"
	"github.com/dumeirei/island-tour-backend/pkg/storage"
)

// MaxImageSize 图片最大大小（5MB）
const MaxImageSize = 5 * 1024 * 1024

// UploadService 上传服务
type UploadService struct {
	uploader storage.Uploader
}

// NewUploadService 创建上传服务
func NewUploadService(uploader storage.Uploader) *UploadService {
	return &UploadService{uploader: uploader}
}

// UploadImageRequest 上传图片请求
type UploadImageRequest struct {
	File     *multipart.FileHeader
	Category string // 图片归属：location, banner 等
}

// UploadImageResponse 上传图片响应
type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

// UploadImage 上传图片
// 先整体读入内存做 magic bytes 校验，再重置读取位置上传
func (s *UploadService) UploadImage(ctx context.Context, req *UploadImageRequest) (*UploadImageResponse, error) {
	if req.File == nil {
		return nil, errors.ErrInvalidParams.WithMessage("请选择要上传的文件")
	}

	if req.File.Size > MaxImageSize {
		return nil, errors.ErrInvalidParams.WithMessage(fmt.Sprintf("图片大小不能超过 %dMB", MaxImageSize/(1024*1024)))
	}

	file, err := req.File.Open()
	if err != nil {
		return nil, errors.ErrOperationFailed.WithMessage("无法打开文件").WithError(err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return nil, errors.ErrOperationFailed.WithMessage("读取文件失败").WithError(err)
	}

	reader := bytes.NewReader(buf.Bytes())
	if err := storage.ValidateImageFile(req.File.Filename, reader); err != nil {
		metrics.GetMetrics().RecordUpload("rejected")
		return nil, errors.ErrInvalidParams.WithMessage("文件格式不正确：仅支持 jpg/jpeg/png/gif/webp 格式").WithError(err)
	}

	category := req.Category
	if category == "" {
		category = "images"
	}
	objectKey := storage.GenerateObjectKey(category, req.File.Filename)

	reader.Seek(0, io.SeekStart)
	url, err := s.uploader.Upload(ctx, objectKey, reader)
	if err != nil {
		metrics.GetMetrics().RecordUpload("failed")
		return nil, errors.ErrOperationFailed.WithMessage("上传文件失败").WithError(err)
	}

	metrics.GetMetrics().RecordUpload("success")
	return &UploadImageResponse{
		URL:      url,
		FileName: req.File.Filename,
		Size:     req.File.Size,
	}, nil
}
