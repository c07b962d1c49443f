package models

import (
	"time"
)

// 评分范围
const (
	RatingMin = 1
	RatingMax = 5
)

// Review 评价模型
// (UserID, LocationID) 唯一：数据库唯一索引是并发提交下的最终裁决，
// 服务层的存在性检查只是提前拒绝
type Review struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex:uk_reviews_user_location" json:"user_id"`
	LocationID int64     `gorm:"not null;uniqueIndex:uk_reviews_user_location;index" json:"location_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:varchar(1000);not null;default:''" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName 表名
func (Review) TableName() string {
	return "reviews"
}

// IsValidRating 评分是否在允许范围内
func IsValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
