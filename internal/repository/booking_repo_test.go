// Package repository 预订仓储单元测试
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

func TestBookingRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "booker@example.com")
	location := seedLocation(t, db, "沙滩酒店", nil)

	checkIn := time.Now().AddDate(0, 0, 3)
	checkOut := checkIn.AddDate(0, 0, 2)

	booking := &models.Booking{
		UserID:         user.ID,
		LocationID:     location.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
		Status:         models.BookingStatusPending,
	}
	require.NoError(t, repo.Create(ctx, booking))
	assert.NotZero(t, booking.ID)

	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, got.Status)
	assert.Equal(t, 2, got.NumberOfGuests)

	withLocation, err := repo.GetByIDWithLocation(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, withLocation.Location)
	assert.Equal(t, "沙滩酒店", withLocation.Location.Name)
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "lister@example.com")
	other := seedUser(t, db, "other@example.com")
	location := seedLocation(t, db, "山顶民宿", nil)

	checkIn := time.Now().AddDate(0, 0, 1)
	seedBooking(t, db, user.ID, location.ID, models.BookingStatusPending, checkIn, checkIn.AddDate(0, 0, 1))
	seedBooking(t, db, user.ID, location.ID, models.BookingStatusConfirmed, checkIn, checkIn.AddDate(0, 0, 2))
	seedBooking(t, db, other.ID, location.ID, models.BookingStatusPending, checkIn, checkIn.AddDate(0, 0, 1))

	// 按用户过滤
	bookings, total, err := repo.List(ctx, BookingListParams{UserID: user.ID, Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bookings, 2)

	// 按状态过滤
	status := models.BookingStatusConfirmed
	bookings, total, err = repo.List(ctx, BookingListParams{UserID: user.ID, Status: &status, Offset: 0, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.BookingStatusConfirmed, bookings[0].Status)

	all, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	require.NotNil(t, all[0].Location)
}

func TestBookingRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "uf@example.com")
	location := seedLocation(t, db, "更新地点", nil)
	checkIn := time.Now().AddDate(0, 0, 5)
	booking := seedBooking(t, db, user.ID, location.ID, models.BookingStatusPending, checkIn, checkIn.AddDate(0, 0, 2))

	require.NoError(t, repo.UpdateFields(ctx, booking.ID, map[string]interface{}{
		"status":           models.BookingStatusConfirmed,
		"number_of_guests": 4,
	}))

	got, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	assert.Equal(t, 4, got.NumberOfGuests)
}

func TestBookingRepository_ListConfirmedCheckedOut(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "sched@example.com")
	location := seedLocation(t, db, "定时任务地点", nil)

	past := time.Now().AddDate(0, 0, -5)
	future := time.Now().AddDate(0, 0, 5)

	expired := seedBooking(t, db, user.ID, location.ID, models.BookingStatusConfirmed, past.AddDate(0, 0, -2), past)
	seedBooking(t, db, user.ID, location.ID, models.BookingStatusConfirmed, future, future.AddDate(0, 0, 2))
	seedBooking(t, db, user.ID, location.ID, models.BookingStatusPending, past.AddDate(0, 0, -2), past)
	seedBooking(t, db, user.ID, location.ID, models.BookingStatusCancelled, past.AddDate(0, 0, -2), past)

	// 只有已确认且退房日期已过的预订会被选出
	got, err := repo.ListConfirmedCheckedOut(ctx, time.Now(), 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, expired.ID, got[0].ID)
}
