// Package upload 提供图片上传相关的 HTTP Handler
package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/island-tour-backend/internal/common/handler"
	"github.com/dumeirei/island-tour-backend/internal/common/response"
	uploadService "github.com/dumeirei/island-tour-backend/internal/service/upload"
)

// Handler 上传处理器
type Handler struct {
	uploadService *uploadService.UploadService
}

// NewHandler 创建上传处理器
func NewHandler(uploadSvc *uploadService.UploadService) *Handler {
	return &Handler{
		uploadService: uploadSvc,
	}
}

// RegisterRoutes 注册文件上传路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload/image", h.UploadImage)
}

// UploadImage 上传图片
// @Summary 上传图片
// @Description 上传图片文件，支持 jpg/jpeg/png/gif/webp 格式，最大 5MB
// @Tags 文件上传
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件"
// @Param category formData string false "图片归属" default(images) Enums(images, location, banner)
// @Success 200 {object} response.Response{data=uploadService.UploadImageResponse}
// @Router /api/v1/upload/image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	req := &uploadService.UploadImageRequest{
		File:     file,
		Category: c.PostForm("category"),
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), req)
	handler.MustSucceed(c, err, result)
}
