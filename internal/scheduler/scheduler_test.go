// Package scheduler 定时任务单元测试
package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
	bookingService "github.com/dumeirei/island-tour-backend/internal/service/booking"
)

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()

	var runs int64
	s.AddTask("counter", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt64(&runs, 1)
		return nil
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	// 启动时立即执行一次，之后按间隔触发
	assert.GreaterOrEqual(t, atomic.LoadInt64(&runs), int64(2))

	final := atomic.LoadInt64(&runs)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, final, atomic.LoadInt64(&runs))
}

func setupTaskHandler(t *testing.T) (*TaskHandler, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{}, &models.Vendor{}, &models.Location{},
		&models.LocationImage{}, &models.Review{}, &models.Booking{},
	)
	require.NoError(t, err)

	bookingRepo := repository.NewBookingRepository(db)
	svc := bookingService.NewBookingService(
		db,
		bookingRepo,
		repository.NewLocationRepository(db),
		repository.NewUserRepository(db),
	)
	return NewTaskHandler(db, bookingRepo, svc), db
}

func seedBookingAt(t *testing.T, db *gorm.DB, status models.BookingStatus, checkOut time.Time) *models.Booking {
	user := &models.User{FirstName: "客", LastName: "人", Email: checkOut.Format("20060102150405.000") + string(status) + "@example.com", PasswordHash: "$2a$10$h"}
	require.NoError(t, db.Create(user).Error)

	location := &models.Location{Name: "任务酒店", Address: "addr", Type: models.LocationTypeHotel, IsActive: true}
	require.NoError(t, db.Create(location).Error)

	booking := &models.Booking{
		UserID:       user.ID,
		LocationID:   location.ID,
		CheckInDate:  checkOut.AddDate(0, 0, -2),
		CheckOutDate: checkOut,
		Status:       status,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestTaskHandler_CompleteFinishedBookings(t *testing.T) {
	handler, db := setupTaskHandler(t)
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	finished := seedBookingAt(t, db, models.BookingStatusConfirmed, yesterday)
	ongoing := seedBookingAt(t, db, models.BookingStatusConfirmed, tomorrow)
	pending := seedBookingAt(t, db, models.BookingStatusPending, yesterday)

	require.NoError(t, handler.CompleteFinishedBookings(ctx))

	// 查询目标每次用新结构体，避免已赋值的主键混入查询条件
	var completed models.Booking
	require.NoError(t, db.First(&completed, finished.ID).Error)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)

	// 未到退房日的不动
	var untouched models.Booking
	require.NoError(t, db.First(&untouched, ongoing.ID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, untouched.Status)

	// 未确认的预订不自动完成
	var stillPending models.Booking
	require.NoError(t, db.First(&stillPending, pending.ID).Error)
	assert.Equal(t, models.BookingStatusPending, stillPending.Status)
}

func TestTaskHandler_CompleteFinishedBookings_Empty(t *testing.T) {
	handler, _ := setupTaskHandler(t)
	require.NoError(t, handler.CompleteFinishedBookings(context.Background()))
}
