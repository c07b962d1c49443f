package models

import (
	"time"
)

// Vendor 供应商模型
// 生命周期：注册（未审批）→ 管理员审批通过 → 可被暂停（重新变为未审批）或驳回（删除，
// 名下地点通过 SET NULL 与其解除关联，地点本身保留）
type Vendor struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessName string       `gorm:"type:varchar(200);not null" json:"business_name"`
	ContactName  string       `gorm:"type:varchar(100);not null" json:"contact_name"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber  string       `gorm:"type:varchar(20);not null" json:"phone_number"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	BusinessType LocationType `gorm:"type:varchar(32);not null" json:"business_type"`
	IsApproved   bool         `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Locations []Location `gorm:"foreignKey:VendorID;constraint:OnDelete:SET NULL" json:"locations,omitempty"`
}

// TableName 表名
func (Vendor) TableName() string {
	return "vendors"
}
