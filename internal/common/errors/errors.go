// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
	"net/http"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown          = New(1000, "未知错误")
	ErrInvalidParams    = New(1001, "参数错误")
	ErrNotFound         = New(1002, "资源不存在")
	ErrAlreadyExists    = New(1003, "资源已存在")
	ErrDatabaseError    = New(1004, "数据库错误")
	ErrInternalError    = New(1005, "内部错误")
	ErrRateLimitExceed  = New(1006, "请求过于频繁")
	ErrOperationFailed  = New(1007, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized       = New(2000, "未登录")
	ErrInvalidCredentials = New(2001, "邮箱或密码错误")
	ErrPermissionDenied   = New(2002, "权限不足")
)

// 用户错误码 (3000-3999)
var (
	ErrUserNotFound = New(3000, "用户不存在")
	ErrEmailExists  = New(3001, "该邮箱已被注册")
)

// 供应商错误码 (4000-4999)
var (
	ErrVendorNotFound    = New(4000, "供应商不存在")
	ErrVendorEmailExists = New(4001, "该邮箱已注册供应商账号")
	ErrVendorNotApproved = New(4002, "供应商账号待审批")
)

// 地点错误码 (5000-5999)
var (
	ErrLocationNotFound      = New(5000, "地点不存在")
	ErrLocationTypeInvalid   = New(5001, "无效的地点类型")
	ErrLocationImageNotFound = New(5002, "地点图片不存在")
)

// 评价错误码 (6000-6999)
var (
	ErrReviewNotFound   = New(6000, "评价不存在")
	ErrRatingOutOfRange = New(6001, "评分必须在1到5之间")
	ErrAlreadyReviewed  = New(6002, "您已评价过该地点")
)

// 预订错误码 (7000-7999)
var (
	ErrBookingNotFound     = New(7000, "预订不存在")
	ErrBookingDateInvalid  = New(7001, "退房日期必须晚于入住日期")
	ErrBookingDatePast     = New(7002, "入住日期不能是过去")
	ErrBookingFinalized    = New(7003, "预订已终结，无法修改")
	ErrBookingCannotCancel = New(7004, "预订已终结，无法取消")
	ErrBookingTransition   = New(7005, "预订状态迁移不合法")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

// HTTPStatus 业务错误码对应的 HTTP 状态码
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrInvalidParams.Code, ErrLocationTypeInvalid.Code,
		ErrRatingOutOfRange.Code, ErrBookingDateInvalid.Code, ErrBookingDatePast.Code:
		return http.StatusBadRequest
	case ErrUnauthorized.Code, ErrInvalidCredentials.Code, ErrVendorNotApproved.Code:
		return http.StatusUnauthorized
	case ErrPermissionDenied.Code:
		return http.StatusForbidden
	case ErrNotFound.Code, ErrUserNotFound.Code, ErrVendorNotFound.Code,
		ErrLocationNotFound.Code, ErrLocationImageNotFound.Code,
		ErrReviewNotFound.Code, ErrBookingNotFound.Code:
		return http.StatusNotFound
	case ErrAlreadyExists.Code, ErrEmailExists.Code, ErrVendorEmailExists.Code,
		ErrAlreadyReviewed.Code, ErrBookingFinalized.Code,
		ErrBookingCannotCancel.Code, ErrBookingTransition.Code:
		return http.StatusConflict
	case ErrRateLimitExceed.Code:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
