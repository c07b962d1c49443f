// Package review 提供评价相关的 HTTP Handler
package review

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/island-tour-backend/internal/common/handler"
	"github.com/dumeirei/island-tour-backend/internal/common/response"
	reviewService "github.com/dumeirei/island-tour-backend/internal/service/review"
)

// Handler 评价处理器
type Handler struct {
	reviewService *reviewService.ReviewService
}

// NewHandler 创建评价处理器
func NewHandler(reviewSvc *reviewService.ReviewService) *Handler {
	return &Handler{
		reviewService: reviewSvc,
	}
}

// RegisterRoutes 注册评价相关路由
// anonymousLimiter 为匿名评价的限流中间件，可为空
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, anonymousLimiter ...gin.HandlerFunc) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", h.CreateReview)

		anonymous := reviews.Group("")
		anonymous.Use(anonymousLimiter...)
		anonymous.POST("/anonymous", h.CreateAnonymousReview)

		reviews.GET("/:id", h.GetReview)
		reviews.PUT("/:id", h.UpdateReview)
		reviews.DELETE("/:id", h.DeleteReview)
	}
	rg.GET("/locations/:id/reviews", h.GetLocationReviews)
}

// createReviewRequest 创建评价请求（含提交者）
type createReviewRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	reviewService.CreateReviewRequest
}

// CreateReview 创建评价
// @Summary 创建评价
// @Description 同一用户对同一地点只能评价一次，提交后同步重算地点评分
// @Tags 评价
// @Accept json
// @Produce json
// @Param request body review.createReviewRequest true "请求参数"
// @Success 200 {object} response.Response{data=review.ReviewInfo}
// @Router /api/v1/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.reviewService.CreateReview(c.Request.Context(), req.UserID, &req.CreateReviewRequest)
	handler.MustSucceed(c, err, info)
}

// CreateAnonymousReview 创建匿名评价
// @Summary 创建匿名评价
// @Description 按邮箱查找或创建访客用户，再以该用户身份提交评价
// @Tags 评价
// @Accept json
// @Produce json
// @Param request body review.AnonymousReviewRequest true "请求参数"
// @Success 200 {object} response.Response{data=review.ReviewInfo}
// @Router /api/v1/reviews/anonymous [post]
func (h *Handler) CreateAnonymousReview(c *gin.Context) {
	var req reviewService.AnonymousReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.reviewService.CreateAnonymousReview(c.Request.Context(), &req)
	handler.MustSucceed(c, err, info)
}

// GetReview 获取评价详情
// @Summary 获取评价详情
// @Tags 评价
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} response.Response{data=review.ReviewInfo}
// @Router /api/v1/reviews/{id} [get]
func (h *Handler) GetReview(c *gin.Context) {
	reviewID, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	info, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	handler.MustSucceed(c, err, info)
}

// UpdateReview 更新评价
// @Summary 更新评价
// @Description 带 user_id 查询参数时校验评价归属，更新后同步重算地点评分
// @Tags 评价
// @Accept json
// @Produce json
// @Param id path int true "评价ID"
// @Param user_id query int false "提交者用户ID"
// @Param request body review.UpdateReviewRequest true "请求参数"
// @Success 200 {object} response.Response{data=review.ReviewInfo}
// @Router /api/v1/reviews/{id} [put]
func (h *Handler) UpdateReview(c *gin.Context) {
	reviewID, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	requesterID, ok := handler.ParseQueryID(c, "user_id", "用户")
	if !ok {
		return
	}

	var req reviewService.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, requesterID, &req)
	handler.MustSucceed(c, err, info)
}

// DeleteReview 删除评价
// @Summary 删除评价
// @Description 带 user_id 查询参数时校验评价归属，删除后同步重算地点评分
// @Tags 评价
// @Produce json
// @Param id path int true "评价ID"
// @Param user_id query int false "提交者用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	reviewID, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	requesterID, ok := handler.ParseQueryID(c, "user_id", "用户")
	if !ok {
		return
	}

	err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, requesterID)
	handler.MustSucceed(c, err, nil)
}

// GetLocationReviews 获取地点评价列表
// @Summary 获取地点评价列表
// @Tags 评价
// @Produce json
// @Param id path int true "地点ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=review.ReviewListResponse}
// @Router /api/v1/locations/{id}/reviews [get]
func (h *Handler) GetLocationReviews(c *gin.Context) {
	locationID, ok := handler.ParseID(c, "地点")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	result, err := h.reviewService.GetLocationReviews(c.Request.Context(), locationID, p.Page, p.PageSize)
	handler.MustSucceed(c, err, result)
}
