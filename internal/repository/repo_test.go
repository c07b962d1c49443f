// Package repository 仓储层测试公共设施
package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Location{},
		&models.LocationImage{},
		&models.Review{},
		&models.Booking{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		FirstName:    "测试",
		LastName:     "用户",
		Email:        email,
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedVendor(t *testing.T, db *gorm.DB, email string, approved bool) *models.Vendor {
	vendor := &models.Vendor{
		BusinessName: "测试商家",
		ContactName:  "联系人",
		Email:        email,
		PhoneNumber:  "13800000000",
		PasswordHash: "$2a$10$hash",
		BusinessType: models.LocationTypeHotel,
		IsApproved:   approved,
	}
	require.NoError(t, db.Create(vendor).Error)
	return vendor
}

func seedLocation(t *testing.T, db *gorm.DB, name string, vendorID *int64) *models.Location {
	location := &models.Location{
		Name:     name,
		Address:  "测试地址",
		Type:     models.LocationTypeHotel,
		IsActive: true,
		VendorID: vendorID,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

func seedBooking(t *testing.T, db *gorm.DB, userID, locationID int64, status models.BookingStatus, checkIn, checkOut time.Time) *models.Booking {
	booking := &models.Booking{
		UserID:         userID,
		LocationID:     locationID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
		Status:         status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
