// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

// LocationRepository 地点仓储
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点仓储
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create 创建地点
func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// GetByID 根据 ID 获取地点
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetByIDWithImages 根据 ID 获取地点（包含按展示序号排序的图片）
func (r *LocationRepository) GetByIDWithImages(ctx context.Context, id int64) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetByIDAndVendor 获取属于指定供应商的地点
// 地点不存在与不属于该供应商返回同一个 gorm.ErrRecordNotFound，
// 调用方不区分两种情况，避免暴露他人地点的存在性
func (r *LocationRepository) GetByIDAndVendor(ctx context.Context, id, vendorID int64) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// Update 更新地点
func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// UpdateFields 更新指定字段
func (r *LocationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Location{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除地点
// 图片和评价由外键 CASCADE 一并删除
func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Location{}, id).Error
}

// LocationListParams 地点列表查询参数
type LocationListParams struct {
	Offset   int
	Limit    int
	Type     *models.LocationType
	VendorID *int64
	OnlyActive bool
}

// List 获取地点列表，按平均评分降序
func (r *LocationRepository) List(ctx context.Context, params LocationListParams) ([]*models.Location, int64, error) {
	var locations []*models.Location
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Location{})

	// 过滤条件
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("average_rating DESC, id ASC").Offset(params.Offset).Limit(params.Limit).Find(&locations).Error; err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

// ListByVendor 获取供应商名下全部地点
func (r *LocationRepository) ListByVendor(ctx context.Context, vendorID int64) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
