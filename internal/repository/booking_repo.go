// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

// BookingRepository 预订仓储
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓储
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create 创建预订
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID 根据 ID 获取预订
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByIDWithLocation 根据 ID 获取预订（包含地点信息）
func (r *BookingRepository) GetByIDWithLocation(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Location").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update 更新预订
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// UpdateFields 更新指定字段
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields).Error
}

// BookingListParams 预订列表查询参数
type BookingListParams struct {
	Offset     int
	Limit      int
	UserID     int64
	LocationID int64
	Status     *models.BookingStatus
}

// List 获取预订列表
func (r *BookingRepository) List(ctx context.Context, params BookingListParams) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})

	// 过滤条件
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.LocationID > 0 {
		query = query.Where("location_id = ?", params.LocationID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Preload("Location").Order("created_at DESC").Offset(params.Offset).Limit(params.Limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListByUser 获取用户全部预订
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListConfirmedCheckedOut 获取退房日期早于指定时间的已确认预订
// 定时任务用于把这类预订结转为已完成
func (r *BookingRepository) ListConfirmedCheckedOut(ctx context.Context, before time.Time, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND check_out_date < ?", models.BookingStatusConfirmed, before).
		Order("check_out_date ASC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
