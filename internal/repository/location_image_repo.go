// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

// LocationImageRepository 地点图片仓储
type LocationImageRepository struct {
	db *gorm.DB
}

// NewLocationImageRepository 创建地点图片仓储
func NewLocationImageRepository(db *gorm.DB) *LocationImageRepository {
	return &LocationImageRepository{db: db}
}

// Create 创建图片记录
func (r *LocationImageRepository) Create(ctx context.Context, image *models.LocationImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetByID 根据 ID 获取图片
func (r *LocationImageRepository) GetByID(ctx context.Context, id int64) (*models.LocationImage, error) {
	var image models.LocationImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// GetByIDAndLocation 获取属于指定地点的图片
func (r *LocationImageRepository) GetByIDAndLocation(ctx context.Context, id, locationID int64) (*models.LocationImage, error) {
	var image models.LocationImage
	err := r.db.WithContext(ctx).
		Where("id = ? AND location_id = ?", id, locationID).
		First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListByLocation 获取地点全部图片，按展示序号升序
func (r *LocationImageRepository) ListByLocation(ctx context.Context, locationID int64) ([]*models.LocationImage, error) {
	var images []*models.LocationImage
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// MaxDisplayOrder 获取地点当前最大展示序号，无图片时返回 -1
func (r *LocationImageRepository) MaxDisplayOrder(ctx context.Context, locationID int64) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.LocationImage{}).
		Where("location_id = ?", locationID).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// Delete 删除图片
// 不重排其余图片的展示序号，序号允许出现空洞
func (r *LocationImageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.LocationImage{}, id).Error
}
