// Package models 定义数据模型
package models

import (
	"time"
)

// User 旅行者用户模型
// PasswordHash 为空字符串时表示匿名评价创建的访客身份
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null;default:''" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Reviews  []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// IsGuest 是否为访客身份（匿名评价自动创建，无密码）
func (u *User) IsGuest() bool {
	return u.PasswordHash == ""
}

// FullName 显示名称
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
