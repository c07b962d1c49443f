// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

// ReviewRepository 评价仓储
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 创建评价
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID 根据 ID 获取评价
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByIDWithUser 根据 ID 获取评价（包含用户信息）
func (r *ReviewRepository) GetByIDWithUser(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByUserAndLocation 根据用户与地点获取评价
func (r *ReviewRepository) GetByUserAndLocation(ctx context.Context, userID, locationID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ExistsByUserAndLocation 用户是否已评价该地点
func (r *ReviewRepository) ExistsByUserAndLocation(ctx context.Context, userID, locationID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update 更新评价
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete 删除评价
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

// ListByLocation 获取地点评价列表，按创建时间降序
func (r *ReviewRepository) ListByLocation(ctx context.Context, locationID int64, offset, limit int) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("location_id = ?", locationID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ListRecentByLocation 获取地点最新的若干条评价
func (r *ReviewRepository) ListRecentByLocation(ctx context.Context, locationID int64, limit int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ratingAggregate 评分聚合结果
type ratingAggregate struct {
	Count   int64
	Average float64
}

// Aggregate 统计地点的评价数量和平均评分
// 无评价时平均分为 0
func (r *ReviewRepository) Aggregate(ctx context.Context, locationID int64) (int64, float64, error) {
	var agg ratingAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("location_id = ?", locationID).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Count, agg.Average, nil
}
