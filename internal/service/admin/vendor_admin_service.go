// Package admin 提供供应商审批管理服务
package admin

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/common/metrics"
	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
)

// VendorAdminService 供应商审批管理服务
type VendorAdminService struct {
	db         *gorm.DB
	vendorRepo *repository.VendorRepository
}

// NewVendorAdminService 创建供应商审批管理服务
func NewVendorAdminService(db *gorm.DB, vendorRepo *repository.VendorRepository) *VendorAdminService {
	return &VendorAdminService{
		db:         db,
		vendorRepo: vendorRepo,
	}
}

// VendorSummary 供应商概要
type VendorSummary struct {
	ID           int64               `json:"id"`
	BusinessName string              `json:"business_name"`
	ContactName  string              `json:"contact_name"`
	Email        string              `json:"email"`
	PhoneNumber  string              `json:"phone_number"`
	BusinessType models.LocationType `json:"business_type"`
	IsApproved   bool                `json:"is_approved"`
	CreatedAt    string              `json:"created_at"`
}

// VendorListResponse 供应商列表响应
type VendorListResponse struct {
	List     []*VendorSummary `json:"list"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// UpdateVendorRequest 更新供应商资料请求
type UpdateVendorRequest struct {
	BusinessName *string `json:"business_name" binding:"omitempty,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	PhoneNumber  *string `json:"phone_number" binding:"omitempty,max=20"`
	BusinessType *string `json:"business_type"`
}

// ListPendingVendors 获取待审批供应商列表
func (s *VendorAdminService) ListPendingVendors(ctx context.Context, page, pageSize int) (*VendorListResponse, error) {
	return s.listByApproval(ctx, false, page, pageSize)
}

// ListApprovedVendors 获取已审批供应商列表
func (s *VendorAdminService) ListApprovedVendors(ctx context.Context, page, pageSize int) (*VendorListResponse, error) {
	return s.listByApproval(ctx, true, page, pageSize)
}

func (s *VendorAdminService) listByApproval(ctx context.Context, approved bool, page, pageSize int) (*VendorListResponse, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}

	vendors, total, err := s.vendorRepo.ListByApproval(ctx, approved, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	list := make([]*VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		list = append(list, toVendorSummary(v))
	}

	return &VendorListResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ApproveVendor 审批通过供应商
// 对已审批供应商重复调用是幂等的
func (s *VendorAdminService) ApproveVendor(ctx context.Context, vendorID int64) (*VendorSummary, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if !vendor.IsApproved {
		if err := s.vendorRepo.UpdateFields(ctx, vendorID, map[string]interface{}{"is_approved": true}); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		vendor.IsApproved = true
		metrics.GetMetrics().RecordVendorApproval("approve")
	}

	return toVendorSummary(vendor), nil
}

// SuspendVendor 暂停供应商
// 供应商回到未审批状态，需再次审批才能继续管理地点
func (s *VendorAdminService) SuspendVendor(ctx context.Context, vendorID int64) (*VendorSummary, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if vendor.IsApproved {
		if err := s.vendorRepo.UpdateFields(ctx, vendorID, map[string]interface{}{"is_approved": false}); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		vendor.IsApproved = false
		metrics.GetMetrics().RecordVendorApproval("suspend")
	}

	return toVendorSummary(vendor), nil
}

// RejectVendor 驳回供应商
// 删除供应商账号，名下地点与其解除关联但保留
func (s *VendorAdminService) RejectVendor(ctx context.Context, vendorID int64) error {
	if _, err := s.getVendor(ctx, vendorID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 显式解除关联，不依赖数据库外键行为
		if err := tx.Model(&models.Location{}).
			Where("vendor_id = ?", vendorID).
			Update("vendor_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Vendor{}, vendorID).Error
	})
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordVendorApproval("reject")
	return nil
}

// UpdateVendor 更新供应商资料
func (s *VendorAdminService) UpdateVendor(ctx context.Context, vendorID int64, req *UpdateVendorRequest) (*VendorSummary, error) {
	vendor, err := s.getVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		vendor.BusinessName = *req.BusinessName
	}
	if req.ContactName != nil {
		vendor.ContactName = *req.ContactName
	}
	if req.PhoneNumber != nil {
		vendor.PhoneNumber = *req.PhoneNumber
	}
	if req.BusinessType != nil {
		businessType := models.LocationType(*req.BusinessType)
		if !businessType.IsValid() {
			return nil, errors.ErrLocationTypeInvalid
		}
		vendor.BusinessType = businessType
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return toVendorSummary(vendor), nil
}

func (s *VendorAdminService) getVendor(ctx context.Context, vendorID int64) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrVendorNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return vendor, nil
}

// toVendorSummary 转换为供应商概要
func toVendorSummary(vendor *models.Vendor) *VendorSummary {
	return &VendorSummary{
		ID:           vendor.ID,
		BusinessName: vendor.BusinessName,
		ContactName:  vendor.ContactName,
		Email:        vendor.Email,
		PhoneNumber:  vendor.PhoneNumber,
		BusinessType: vendor.BusinessType,
		IsApproved:   vendor.IsApproved,
		CreatedAt:    vendor.CreatedAt.Format(time.RFC3339),
	}
}
