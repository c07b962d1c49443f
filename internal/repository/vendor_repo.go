// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

// VendorRepository 供应商仓储
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建供应商仓储
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create 创建供应商
func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// GetByID 根据 ID 获取供应商
func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByIDWithLocations 根据 ID 获取供应商（包含名下地点）
func (r *VendorRepository) GetByIDWithLocations(ctx context.Context, id int64) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Preload("Locations").First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByEmail 根据邮箱获取供应商
func (r *VendorRepository) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ExistsByEmail 邮箱是否已注册
func (r *VendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update 更新供应商
func (r *VendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// UpdateFields 更新指定字段
func (r *VendorRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Vendor{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除供应商
// 名下地点的 vendor_id 由外键 SET NULL 置空，地点本身保留
func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Vendor{}, id).Error
}

// ListByApproval 按审批状态获取供应商列表
func (r *VendorRepository) ListByApproval(ctx context.Context, approved bool, offset, limit int) ([]*models.Vendor, int64, error) {
	var vendors []*models.Vendor
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("is_approved = ?", approved)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&vendors).Error; err != nil {
		return nil, 0, err
	}

	return vendors, total, nil
}
