// Package booking 提供预订服务
// 状态机：Pending → Confirmed → Completed；Pending/Confirmed → Cancelled；
// 终态预订的任何修改都被拒绝
package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/common/metrics"
	"github.com/dumeirei/island-tour-backend/internal/common/utils"
	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
)

// BookingService 预订服务
type BookingService struct {
	db           *gorm.DB
	bookingRepo  *repository.BookingRepository
	locationRepo *repository.LocationRepository
	userRepo     *repository.UserRepository
}

// NewBookingService 创建预订服务
func NewBookingService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	locationRepo *repository.LocationRepository,
	userRepo *repository.UserRepository,
) *BookingService {
	return &BookingService{
		db:           db,
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

// BookingInfo 预订信息
type BookingInfo struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"user_id"`
	LocationID      int64                `json:"location_id"`
	LocationName    string               `json:"location_name,omitempty"`
	CheckInDate     string               `json:"check_in_date"`
	CheckOutDate    string               `json:"check_out_date"`
	NumberOfGuests  int                  `json:"number_of_guests"`
	SpecialRequests string               `json:"special_requests,omitempty"`
	TotalPrice      *float64             `json:"total_price,omitempty"`
	Status          models.BookingStatus `json:"status"`
	CreatedAt       string               `json:"created_at"`
}

// BookingListResponse 预订列表响应
type BookingListResponse struct {
	List     []*BookingInfo `json:"list"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// CreateBookingRequest 创建预订请求
type CreateBookingRequest struct {
	LocationID      int64    `json:"location_id" binding:"required"`
	CheckInDate     string   `json:"check_in_date" binding:"required"`
	CheckOutDate    string   `json:"check_out_date" binding:"required"`
	NumberOfGuests  int      `json:"number_of_guests" binding:"required,min=1"`
	SpecialRequests *string  `json:"special_requests" binding:"omitempty,max=1000"`
	TotalPrice      *float64 `json:"total_price" binding:"omitempty,gte=0"`
}

// UpdateBookingRequest 更新预订请求
// 部分更新：缺省字段保持原值，日期校验针对合并后的生效值
type UpdateBookingRequest struct {
	CheckInDate     *string  `json:"check_in_date"`
	CheckOutDate    *string  `json:"check_out_date"`
	NumberOfGuests  *int     `json:"number_of_guests" binding:"omitempty,min=1"`
	SpecialRequests *string  `json:"special_requests" binding:"omitempty,max=1000"`
	TotalPrice      *float64 `json:"total_price" binding:"omitempty,gte=0"`
}

const dateLayout = "2006-01-02"

// CreateBooking 创建预订
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, req *CreateBookingRequest) (*BookingInfo, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	location, err := s.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLocationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("入住日期格式错误")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("退房日期格式错误")
	}

	if err := validateBookingDates(checkIn, checkOut, time.Now()); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:          userID,
		LocationID:      req.LocationID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		TotalPrice:      req.TotalPrice,
		Status:          models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordBooking(string(location.Type))

	booking.Location = location
	return toBookingInfo(booking), nil
}

// UpdateBooking 更新预订
// 终态预订不可修改；日期先后顺序按合并后的生效值校验
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID int64, requesterID *int64, req *UpdateBookingRequest) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByIDWithLocation(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if requesterID != nil && booking.UserID != *requesterID {
		return nil, errors.ErrPermissionDenied
	}

	if booking.Status.IsFinal() {
		return nil, errors.ErrBookingFinalized
	}

	// 合并生效值
	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	if req.CheckInDate != nil {
		checkIn, err = time.Parse(dateLayout, *req.CheckInDate)
		if err != nil {
			return nil, errors.ErrInvalidParams.WithMessage("入住日期格式错误")
		}
	}
	if req.CheckOutDate != nil {
		checkOut, err = time.Parse(dateLayout, *req.CheckOutDate)
		if err != nil {
			return nil, errors.ErrInvalidParams.WithMessage("退房日期格式错误")
		}
	}

	// 动过任一日期都要重查先后顺序；
	// 非过去校验只针对新提交的入住日期，已入住预订改退房日期不受影响
	if req.CheckInDate != nil || req.CheckOutDate != nil {
		if !checkOut.After(checkIn) {
			return nil, errors.ErrBookingDateInvalid
		}
	}
	if req.CheckInDate != nil && checkIn.Before(utils.TruncateDate(time.Now())) {
		return nil, errors.ErrBookingDatePast
	}

	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	if req.NumberOfGuests != nil {
		booking.NumberOfGuests = *req.NumberOfGuests
	}
	if req.SpecialRequests != nil {
		booking.SpecialRequests = req.SpecialRequests
	}
	if req.TotalPrice != nil {
		booking.TotalPrice = req.TotalPrice
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return toBookingInfo(booking), nil
}

// CancelBooking 取消预订
// Pending 和 Confirmed 可取消，终态不可取消
func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64, requesterID *int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByIDWithLocation(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if requesterID != nil && booking.UserID != *requesterID {
		return nil, errors.ErrPermissionDenied
	}

	if booking.Status.IsFinal() {
		return nil, errors.ErrBookingCannotCancel
	}

	return s.transition(ctx, booking, models.BookingStatusCancelled)
}

// ConfirmBooking 确认预订
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByIDWithLocation(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.transition(ctx, booking, models.BookingStatusConfirmed)
}

// CompleteBooking 完成预订
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByIDWithLocation(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.transition(ctx, booking, models.BookingStatusCompleted)
}

// transition 执行状态迁移，非法迁移被状态机拒绝
func (s *BookingService) transition(ctx context.Context, booking *models.Booking, next models.BookingStatus) (*BookingInfo, error) {
	if !booking.Status.CanTransitionTo(next) {
		return nil, errors.ErrBookingTransition
	}

	from := booking.Status
	booking.Status = next
	if err := s.bookingRepo.UpdateFields(ctx, booking.ID, map[string]interface{}{"status": next}); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordBookingTransition(string(from), string(next))
	return toBookingInfo(booking), nil
}

// GetBooking 获取预订详情
func (s *BookingService) GetBooking(ctx context.Context, bookingID int64, requesterID *int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByIDWithLocation(ctx, bookingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if requesterID != nil && booking.UserID != *requesterID {
		return nil, errors.ErrPermissionDenied
	}

	return toBookingInfo(booking), nil
}

// GetUserBookings 获取用户预订列表
func (s *BookingService) GetUserBookings(ctx context.Context, userID int64, page, pageSize int) (*BookingListResponse, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}

	bookings, total, err := s.bookingRepo.List(ctx, repository.BookingListParams{
		UserID: userID,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	list := make([]*BookingInfo, 0, len(bookings))
	for _, b := range bookings {
		list = append(list, toBookingInfo(b))
	}

	return &BookingListResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// validateBookingDates 预订日期校验
// 退房必须晚于入住，入住不能早于今天（按日比较，当天允许）
func validateBookingDates(checkIn, checkOut, now time.Time) error {
	if !checkOut.After(checkIn) {
		return errors.ErrBookingDateInvalid
	}
	if checkIn.Before(utils.TruncateDate(now)) {
		return errors.ErrBookingDatePast
	}
	return nil
}

// toBookingInfo 转换为预订信息
func toBookingInfo(booking *models.Booking) *BookingInfo {
	info := &BookingInfo{
		ID:              booking.ID,
		UserID:          booking.UserID,
		LocationID:      booking.LocationID,
		CheckInDate:     booking.CheckInDate.Format(dateLayout),
		CheckOutDate:    booking.CheckOutDate.Format(dateLayout),
		NumberOfGuests:  booking.NumberOfGuests,
		SpecialRequests: utils.SafeString(booking.SpecialRequests),
		TotalPrice:      booking.TotalPrice,
		Status:          booking.Status,
		CreatedAt:       booking.CreatedAt.Format(time.RFC3339),
	}
	if booking.Location != nil {
		info.LocationName = booking.Location.Name
	}
	return info
}
