// Package user 提供旅行者用户服务
package user

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/crypto"
	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
)

// UserService 用户服务
type UserService struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB, userRepo *repository.UserRepository) *UserService {
	return &UserService{db: db, userRepo: userRepo}
}

// UserInfo 用户信息
type UserInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 用户登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册用户
// 邮箱已被访客身份占用时为其补设密码，完成账号升级
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*UserInfo, error) {
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if existing != nil {
		// 匿名评价创建的访客账号允许转正，正式账号不允许重复注册
		if !existing.IsGuest() {
			return nil, errors.ErrEmailExists
		}
		existing.FirstName = req.FirstName
		existing.LastName = req.LastName
		existing.PasswordHash = hash
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		return toUserInfo(existing), nil
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return toUserInfo(user), nil
}

// Login 用户登录
// 访客账号没有密码，永远无法通过凭证校验
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*UserInfo, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}

	return toUserInfo(user), nil
}

// GetUser 获取用户详情
func (s *UserService) GetUser(ctx context.Context, userID int64) (*UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return toUserInfo(user), nil
}

// toUserInfo 转换为用户信息
func toUserInfo(user *models.User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
