// Package admin 提供后台管理相关的 HTTP Handler
package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/island-tour-backend/internal/common/handler"
	"github.com/dumeirei/island-tour-backend/internal/common/response"
	adminService "github.com/dumeirei/island-tour-backend/internal/service/admin"
)

// VendorHandler 供应商审批处理器
type VendorHandler struct {
	vendorAdminService *adminService.VendorAdminService
}

// NewVendorHandler 创建供应商审批处理器
func NewVendorHandler(vendorAdminSvc *adminService.VendorAdminService) *VendorHandler {
	return &VendorHandler{
		vendorAdminService: vendorAdminSvc,
	}
}

// RegisterRoutes 注册供应商审批路由，rg 应为后台管理路由组
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vendors/pending", h.ListPendingVendors)
	rg.GET("/vendors/approved", h.ListApprovedVendors)
	rg.POST("/vendors/:id/approve", h.ApproveVendor)
	rg.POST("/vendors/:id/suspend", h.SuspendVendor)
	rg.PUT("/vendors/:id", h.UpdateVendor)
	rg.DELETE("/vendors/:id", h.RejectVendor)
}

// ListPendingVendors 获取待审批供应商列表
// @Summary 获取待审批供应商列表
// @Tags 后台管理
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=admin.VendorListResponse}
// @Router /api/v1/admin/vendors/pending [get]
func (h *VendorHandler) ListPendingVendors(c *gin.Context) {
	p := handler.BindPagination(c)
	result, err := h.vendorAdminService.ListPendingVendors(c.Request.Context(), p.Page, p.PageSize)
	handler.MustSucceed(c, err, result)
}

// ListApprovedVendors 获取已审批供应商列表
// @Summary 获取已审批供应商列表
// @Tags 后台管理
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=admin.VendorListResponse}
// @Router /api/v1/admin/vendors/approved [get]
func (h *VendorHandler) ListApprovedVendors(c *gin.Context) {
	p := handler.BindPagination(c)
	result, err := h.vendorAdminService.ListApprovedVendors(c.Request.Context(), p.Page, p.PageSize)
	handler.MustSucceed(c, err, result)
}

// ApproveVendor 审批通过供应商
// @Summary 审批通过供应商
// @Description 幂等操作，已通过的供应商重复审批不报错
// @Tags 后台管理
// @Produce json
// @Param id path int true "供应商ID"
// @Success 200 {object} response.Response{data=admin.VendorSummary}
// @Router /api/v1/admin/vendors/{id}/approve [post]
func (h *VendorHandler) ApproveVendor(c *gin.Context) {
	vendorID, ok := handler.ParseID(c, "供应商")
	if !ok {
		return
	}

	summary, err := h.vendorAdminService.ApproveVendor(c.Request.Context(), vendorID)
	handler.MustSucceed(c, err, summary)
}

// SuspendVendor 暂停供应商
// @Summary 暂停供应商
// @Description 撤回审批资格，供应商恢复为未审批状态
// @Tags 后台管理
// @Produce json
// @Param id path int true "供应商ID"
// @Success 200 {object} response.Response{data=admin.VendorSummary}
// @Router /api/v1/admin/vendors/{id}/suspend [post]
func (h *VendorHandler) SuspendVendor(c *gin.Context) {
	vendorID, ok := handler.ParseID(c, "供应商")
	if !ok {
		return
	}

	summary, err := h.vendorAdminService.SuspendVendor(c.Request.Context(), vendorID)
	handler.MustSucceed(c, err, summary)
}

// RejectVendor 拒绝并删除供应商
// @Summary 拒绝并删除供应商
// @Description 删除供应商前先解除其名下地点的关联，地点本身保留
// @Tags 后台管理
// @Produce json
// @Param id path int true "供应商ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/vendors/{id} [delete]
func (h *VendorHandler) RejectVendor(c *gin.Context) {
	vendorID, ok := handler.ParseID(c, "供应商")
	if !ok {
		return
	}

	err := h.vendorAdminService.RejectVendor(c.Request.Context(), vendorID)
	handler.MustSucceed(c, err, nil)
}

// UpdateVendor 更新供应商资料
// @Summary 更新供应商资料
// @Tags 后台管理
// @Accept json
// @Produce json
// @Param id path int true "供应商ID"
// @Param request body admin.UpdateVendorRequest true "请求参数"
// @Success 200 {object} response.Response{data=admin.VendorSummary}
// @Router /api/v1/admin/vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	vendorID, ok := handler.ParseID(c, "供应商")
	if !ok {
		return
	}

	var req adminService.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	summary, err := h.vendorAdminService.UpdateVendor(c.Request.Context(), vendorID, &req)
	handler.MustSucceed(c, err, summary)
}
