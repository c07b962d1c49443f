//go:build integration

// Package integration 端到端集成测试（依赖 Docker）
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/database"
	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
	adminService "github.com/dumeirei/island-tour-backend/internal/service/admin"
	bookingService "github.com/dumeirei/island-tour-backend/internal/service/booking"
	reviewService "github.com/dumeirei/island-tour-backend/internal/service/review"
	userService "github.com/dumeirei/island-tour-backend/internal/service/user"
	vendorService "github.com/dumeirei/island-tour-backend/internal/service/vendor"
)

type testEnv struct {
	db         *gorm.DB
	userSvc    *userService.UserService
	vendorSvc  *vendorService.VendorService
	adminSvc   *adminService.VendorAdminService
	reviewSvc  *reviewService.ReviewService
	bookingSvc *bookingService.BookingService
}

func setupEnv(t *testing.T) *testEnv {
	ctx := context.Background()
	tc := NewTestContainers(ctx)
	require.NoError(t, tc.StartPostgres(DefaultPostgresConfig()))
	t.Cleanup(func() { tc.Cleanup() })

	db, err := tc.GetPostgresDB()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	imageRepo := repository.NewLocationImageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	return &testEnv{
		db:         db,
		userSvc:    userService.NewUserService(db, userRepo),
		vendorSvc:  vendorService.NewVendorService(db, vendorRepo, locationRepo, imageRepo),
		adminSvc:   adminService.NewVendorAdminService(db, vendorRepo),
		reviewSvc:  reviewService.NewReviewService(db, reviewRepo, locationRepo, userRepo),
		bookingSvc: bookingService.NewBookingService(db, bookingRepo, locationRepo, userRepo),
	}
}

func TestMarketplaceFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := setupEnv(t)
	ctx := context.Background()

	// 供应商注册后处于待审批状态，不能登录也不能建地点
	vendorInfo, err := env.vendorSvc.Register(ctx, &vendorService.RegisterRequest{
		BusinessName: "海岛度假酒店",
		ContactName:  "张经理",
		Email:        "vendor@example.com",
		PhoneNumber:  "13800000000",
		Password:     "secret123",
		BusinessType: "Hotel",
	})
	require.NoError(t, err)
	assert.False(t, vendorInfo.IsApproved)

	_, err = env.vendorSvc.Login(ctx, &vendorService.LoginRequest{
		Email: "vendor@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, errors.ErrVendorNotApproved)

	_, err = env.vendorSvc.AddLocation(ctx, vendorInfo.ID, &vendorService.CreateLocationRequest{
		Name: "椰林海景店", Address: "环岛路1号", Type: "Hotel",
	})
	assert.ErrorIs(t, err, errors.ErrVendorNotApproved)

	// 审批通过后解锁
	_, err = env.adminSvc.ApproveVendor(ctx, vendorInfo.ID)
	require.NoError(t, err)

	_, err = env.vendorSvc.Login(ctx, &vendorService.LoginRequest{
		Email: "vendor@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	location, err := env.vendorSvc.AddLocation(ctx, vendorInfo.ID, &vendorService.CreateLocationRequest{
		Name: "椰林海景店", Address: "环岛路1号", Type: "Hotel",
	})
	require.NoError(t, err)

	// 用户注册并下单
	user, err := env.userSvc.Register(ctx, &userService.RegisterRequest{
		FirstName: "岛民", LastName: "甲",
		Email: "traveler@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	checkIn := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 0, 9).Format("2006-01-02")
	booking, err := env.bookingSvc.CreateBooking(ctx, user.ID, &bookingService.CreateBookingRequest{
		LocationID:     location.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	booking, err = env.bookingSvc.ConfirmBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	booking, err = env.bookingSvc.CompleteBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, booking.Status)

	// 终态预订不可再取消
	_, err = env.bookingSvc.CancelBooking(ctx, booking.ID, &user.ID)
	assert.ErrorIs(t, err, errors.ErrBookingCannotCancel)

	// 评价并验证评分重算
	_, err = env.reviewSvc.CreateReview(ctx, user.ID, &reviewService.CreateReviewRequest{
		LocationID: location.ID, Rating: 5, Comment: "风景一流",
	})
	require.NoError(t, err)

	// Postgres 唯一索引兜底重复评价
	_, err = env.reviewSvc.CreateReview(ctx, user.ID, &reviewService.CreateReviewRequest{
		LocationID: location.ID, Rating: 4,
	})
	assert.ErrorIs(t, err, errors.ErrAlreadyReviewed)

	// 匿名评价创建访客用户并计入评分
	_, err = env.reviewSvc.CreateAnonymousReview(ctx, &reviewService.AnonymousReviewRequest{
		Email: "guest@example.com", FirstName: "访客", LastName: "乙",
		LocationID: location.ID, Rating: 4, Comment: "值得再来",
	})
	require.NoError(t, err)

	var loc models.Location
	require.NoError(t, env.db.First(&loc, location.ID).Error)
	assert.Equal(t, 2, loc.ReviewCount)
	assert.InDelta(t, 4.5, loc.AverageRating, 0.001)

	// 拒绝供应商时解除地点关联，地点保留
	_, err = env.adminSvc.SuspendVendor(ctx, vendorInfo.ID)
	require.NoError(t, err)
	require.NoError(t, env.adminSvc.RejectVendor(ctx, vendorInfo.ID))

	require.NoError(t, env.db.First(&loc, location.ID).Error)
	assert.Nil(t, loc.VendorID)

	_, err = env.vendorSvc.GetVendor(ctx, vendorInfo.ID)
	assert.ErrorIs(t, err, errors.ErrVendorNotFound)
}
