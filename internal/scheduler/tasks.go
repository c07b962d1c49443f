// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/utils"
	"github.com/dumeirei/island-tour-backend/internal/repository"
	bookingService "github.com/dumeirei/island-tour-backend/internal/service/booking"
)

// 单轮处理的预订上限
const completeBatchSize = 100

// TaskHandler 任务处理器
type TaskHandler struct {
	db             *gorm.DB
	bookingRepo    *repository.BookingRepository
	bookingService *bookingService.BookingService
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	bookingSvc *bookingService.BookingService,
) *TaskHandler {
	return &TaskHandler{
		db:             db,
		bookingRepo:    bookingRepo,
		bookingService: bookingSvc,
	}
}

// CompleteFinishedBookings 完成退房日期已过的已确认预订
// 逐条走状态迁移，单条失败不影响其余预订
func (h *TaskHandler) CompleteFinishedBookings(ctx context.Context) error {
	today := utils.TruncateDate(time.Now())

	bookings, err := h.bookingRepo.ListConfirmedCheckedOut(ctx, today, completeBatchSize)
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		return nil
	}

	log.Printf("[Task] Found %d finished bookings to complete", len(bookings))

	for _, booking := range bookings {
		if _, err := h.bookingService.CompleteBooking(ctx, booking.ID); err != nil {
			log.Printf("[Task] Failed to complete booking %d: %v", booking.ID, err)
		}
	}

	return nil
}

// SetupTasks 设置所有任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler, completeInterval time.Duration) {
	if completeInterval <= 0 {
		completeInterval = 10 * time.Minute
	}
	scheduler.AddTask("CompleteFinishedBookings", completeInterval, handler.CompleteFinishedBookings)
}
