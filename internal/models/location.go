package models

import (
	"time"
)

// LocationType 地点类型
type LocationType string

// 地点类型枚举
const (
	LocationTypeHotel             LocationType = "Hotel"
	LocationTypeRestaurant        LocationType = "Restaurant"
	LocationTypeAttraction        LocationType = "Attraction"
	LocationTypeTaxi              LocationType = "Taxi"
	LocationTypeSouvenirShopping  LocationType = "SouvenirShopping"
	LocationTypeAirbnb            LocationType = "Airbnb"
)

// allLocationTypes 合法类型集合
var allLocationTypes = map[LocationType]bool{
	LocationTypeHotel:            true,
	LocationTypeRestaurant:       true,
	LocationTypeAttraction:       true,
	LocationTypeTaxi:             true,
	LocationTypeSouvenirShopping: true,
	LocationTypeAirbnb:           true,
}

// IsValid 类型是否合法
func (t LocationType) IsValid() bool {
	return allLocationTypes[t]
}

// Location 地点模型（酒店/餐厅/景点等）
// AverageRating 和 ReviewCount 为派生字段，每次评价变更后由评价服务全量重算
type Location struct {
	ID            int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string       `gorm:"type:varchar(200);not null" json:"name"`
	Description   string       `gorm:"type:varchar(1000);not null;default:''" json:"description"`
	Address       string       `gorm:"type:varchar(500);not null" json:"address"`
	Type          LocationType `gorm:"type:varchar(32);not null;index" json:"type"`
	Latitude      float64      `gorm:"type:decimal(9,6);not null;default:0" json:"latitude"`
	Longitude     float64      `gorm:"type:decimal(9,6);not null;default:0" json:"longitude"`
	PhoneNumber   *string      `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Website       *string      `gorm:"type:varchar(255)" json:"website,omitempty"`
	ImageURL      *string      `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	AverageRating float64      `gorm:"type:decimal(3,2);not null;default:0" json:"average_rating"`
	ReviewCount   int          `gorm:"not null;default:0" json:"review_count"`
	IsActive      bool         `gorm:"not null;default:true" json:"is_active"`
	VendorID      *int64       `gorm:"index" json:"vendor_id,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Vendor   *Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Images   []LocationImage `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews  []Review        `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Bookings []Booking       `gorm:"foreignKey:LocationID" json:"bookings,omitempty"`
}

// TableName 表名
func (Location) TableName() string {
	return "locations"
}

// LocationImage 地点图片
// DisplayOrder 为同一地点内的展示序号，新图片取当前最大值+1；
// 删除不会重排，序号允许出现空洞，消费方只依赖相对顺序
type LocationImage struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	LocationID   int64     `gorm:"index;not null" json:"location_id"`
	ImageURL     string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Caption      *string   `gorm:"type:varchar(200)" json:"caption,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName 表名
func (LocationImage) TableName() string {
	return "location_images"
}
