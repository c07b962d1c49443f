package models

import (
	"time"
)

// BookingStatus 预订状态
type BookingStatus string

// 预订状态枚举
// 状态机：Pending → Confirmed → Completed；Pending/Confirmed → Cancelled；
// Cancelled 和 Completed 为终态，不允许任何后续迁移
const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusCompleted BookingStatus = "Completed"
)

// IsFinal 是否为终态
func (s BookingStatus) IsFinal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// CanTransitionTo 状态迁移是否合法
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	case BookingStatusCancelled, BookingStatusCompleted:
		return false
	default:
		return false
	}
}

// Booking 预订模型
type Booking struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"index;not null" json:"user_id"`
	LocationID      int64         `gorm:"index;not null" json:"location_id"`
	CheckInDate     time.Time     `gorm:"not null" json:"check_in_date"`
	CheckOutDate    time.Time     `gorm:"not null" json:"check_out_date"`
	NumberOfGuests  int           `gorm:"not null;default:1" json:"number_of_guests"`
	SpecialRequests *string       `gorm:"type:varchar(1000)" json:"special_requests,omitempty"`
	TotalPrice      *float64      `gorm:"type:decimal(10,2)" json:"total_price,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName 表名
func (Booking) TableName() string {
	return "bookings"
}
