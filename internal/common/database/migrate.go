package database

import (
	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

// AutoMigrate 自动迁移数据表
// 外键级联规则（供应商删除 SET NULL、地点删除 CASCADE）由模型标签声明
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Location{},
		&models.LocationImage{},
		&models.Review{},
		&models.Booking{},
	)
}
