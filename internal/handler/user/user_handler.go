// Package user 提供用户相关的 HTTP Handler
package user

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/island-tour-backend/internal/common/handler"
	"github.com/dumeirei/island-tour-backend/internal/common/response"
	userService "github.com/dumeirei/island-tour-backend/internal/service/user"
)

// Handler 用户处理器
type Handler struct {
	userService *userService.UserService
}

// NewHandler 创建用户处理器
func NewHandler(userSvc *userService.UserService) *Handler {
	return &Handler{
		userService: userSvc,
	}
}

// RegisterRoutes 注册用户相关路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/register", h.Register)
	rg.POST("/users/login", h.Login)
	rg.GET("/users/:id", h.GetUser)
}

// Register 注册用户
// @Summary 注册用户
// @Description 注册新用户；邮箱已被访客身份占用时自动升级为正式账号
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body user.RegisterRequest true "请求参数"
// @Success 200 {object} response.Response{data=user.UserInfo}
// @Router /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req userService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.userService.Register(c.Request.Context(), &req)
	handler.MustSucceed(c, err, info)
}

// Login 用户登录
// @Summary 用户登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body user.LoginRequest true "请求参数"
// @Success 200 {object} response.Response{data=user.UserInfo}
// @Router /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req userService.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	info, err := h.userService.Login(c.Request.Context(), &req)
	handler.MustSucceed(c, err, info)
}

// GetUser 获取用户详情
// @Summary 获取用户详情
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=user.UserInfo}
// @Router /api/v1/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := handler.ParseID(c, "用户")
	if !ok {
		return
	}

	info, err := h.userService.GetUser(c.Request.Context(), userID)
	handler.MustSucceed(c, err, info)
}
