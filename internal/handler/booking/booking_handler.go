// Package booking 提供预订相关的 HTTP Handler
package booking

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/island-tour-backend/internal/common/handler"
	"github.com/dumeirei/island-tour-backend/internal/common/response"
	bookingService "github.com/dumeirei/island-tour-backend/internal/service/booking"
)

// Handler 预订处理器
type Handler struct {
	bookingService *bookingService.BookingService
}

// NewHandler 创建预订处理器
func NewHandler(bookingSvc *bookingService.BookingService) *Handler {
	return &Handler{
		bookingService: bookingSvc,
	}
}

// RegisterRoutes 注册预订相关路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
	rg.GET("/users/:id/bookings", h.GetUserBookings)
}

// RegisterAdminRoutes 注册后台预订路由，确认与完成不对外开放
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/confirm", h.ConfirmBooking)
	rg.POST("/bookings/:id/complete", h.CompleteBooking)
}

// createBookingRequest 创建预订请求（含提交者）
type createBookingRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	bookingService.CreateBookingRequest
}

// CreateBooking 创建预订
// @Summary 创建预订
// @Description 退房日期必须晚于入住日期，入住日期不得早于今天，初始状态为 Pending
// @Tags 预订
// @Accept json
// @Produce json
// @Param request body booking.createBookingRequest true "请求参数"
// @Success 200 {object} response.Response{data=booking.BookingInfo}
// @Router /api/v1/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.bookingService.CreateBooking(c.Request.Context(), req.UserID, &req.CreateBookingRequest)
	handler.MustSucceed(c, err, info)
}

// GetBooking 获取预订详情
// @Summary 获取预订详情
// @Description 带 user_id 查询参数时校验预订归属
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Param user_id query int false "提交者用户ID"
// @Success 200 {object} response.Response{data=booking.BookingInfo}
// @Router /api/v1/bookings/{id} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	requesterID, ok := handler.ParseQueryID(c, "user_id", "用户")
	if !ok {
		return
	}

	info, err := h.bookingService.GetBooking(c.Request.Context(), bookingID, requesterID)
	handler.MustSucceed(c, err, info)
}

// UpdateBooking 更新预订
// @Summary 更新预订
// @Description 部分更新，终态预订不可修改；日期字段变更时按合并后的生效值重新校验
// @Tags 预订
// @Accept json
// @Produce json
// @Param id path int true "预订ID"
// @Param user_id query int false "提交者用户ID"
// @Param request body booking.UpdateBookingRequest true "请求参数"
// @Success 200 {object} response.Response{data=booking.BookingInfo}
// @Router /api/v1/bookings/{id} [put]
func (h *Handler) UpdateBooking(c *gin.Context) {
	bookingID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	requesterID, ok := handler.ParseQueryID(c, "user_id", "用户")
	if !ok {
		return
	}

	var req bookingService.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.bookingService.UpdateBooking(c.Request.Context(), bookingID, requesterID, &req)
	handler.MustSucceed(c, err, info)
}

// CancelBooking 取消预订
// @Summary 取消预订
// @Description 仅 Pending 或 Confirmed 状态的预订可取消
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Param user_id query int false "提交者用户ID"
// @Success 200 {object} response.Response{data=booking.BookingInfo}
// @Router /api/v1/bookings/{id}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	requesterID, ok := handler.ParseQueryID(c, "user_id", "用户")
	if !ok {
		return
	}

	info, err := h.bookingService.CancelBooking(c.Request.Context(), bookingID, requesterID)
	handler.MustSucceed(c, err, info)
}

// ConfirmBooking 确认预订
// @Summary 确认预订
// @Description 仅 Pending 状态的预订可确认
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=booking.BookingInfo}
// @Router /api/v1/admin/bookings/{id}/confirm [post]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	bookingID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	info, err := h.bookingService.ConfirmBooking(c.Request.Context(), bookingID)
	handler.MustSucceed(c, err, info)
}

// CompleteBooking 完成预订
// @Summary 完成预订
// @Description 仅 Confirmed 状态的预订可完成
// @Tags 预订
// @Produce json
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=booking.BookingInfo}
// @Router /api/v1/admin/bookings/{id}/complete [post]
func (h *Handler) CompleteBooking(c *gin.Context) {
	bookingID, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	info, err := h.bookingService.CompleteBooking(c.Request.Context(), bookingID)
	handler.MustSucceed(c, err, info)
}

// GetUserBookings 获取用户预订列表
// @Summary 获取用户预订列表
// @Tags 预订
// @Produce json
// @Param id path int true "用户ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=booking.BookingListResponse}
// @Router /api/v1/users/{id}/bookings [get]
func (h *Handler) GetUserBookings(c *gin.Context) {
	userID, ok := handler.ParseID(c, "用户")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	result, err := h.bookingService.GetUserBookings(c.Request.Context(), userID, p.Page, p.PageSize)
	handler.MustSucceed(c, err, result)
}
