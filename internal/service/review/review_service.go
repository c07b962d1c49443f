// Package review 提供评价服务
// 每次评价写入都在同一事务内全量重算地点的平均评分和评价数，
// 保证派生字段与评价明细一致
package review

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/common/metrics"
	"github.com/dumeirei/island-tour-backend/internal/common/utils"
	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
)

// ReviewService 评价服务
type ReviewService struct {
	db           *gorm.DB
	reviewRepo   *repository.ReviewRepository
	locationRepo *repository.LocationRepository
	userRepo     *repository.UserRepository
}

// NewReviewService 创建评价服务
func NewReviewService(
	db *gorm.DB,
	reviewRepo *repository.ReviewRepository,
	locationRepo *repository.LocationRepository,
	userRepo *repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		db:           db,
		reviewRepo:   reviewRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

// ReviewInfo 评价信息
type ReviewInfo struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	UserName   string `json:"user_name"`
	LocationID int64  `json:"location_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

// ReviewListResponse 评价列表响应
type ReviewListResponse struct {
	List     []*ReviewInfo `json:"list"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	LocationID int64  `json:"location_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment" binding:"max=1000"`
}

// AnonymousReviewRequest 匿名评价请求
// 按邮箱查找或创建访客用户，再以该用户身份提交评价
type AnonymousReviewRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"required,max=100"`
	LocationID int64  `json:"location_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment" binding:"max=1000"`
}

// UpdateReviewRequest 更新评价请求
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

// CreateReview 创建评价
func (s *ReviewService) CreateReview(ctx context.Context, userID int64, req *CreateReviewRequest) (*ReviewInfo, error) {
	if !models.IsValidRating(req.Rating) {
		return nil, errors.ErrRatingOutOfRange
	}

	// 检查用户与地点存在
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if _, err := s.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLocationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 提前拒绝重复评价，并发下由唯一索引兜底
	exists, err := s.reviewRepo.ExistsByUserAndLocation(ctx, userID, req.LocationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrAlreadyReviewed
	}

	review := &models.Review{
		UserID:     userID,
		LocationID: req.LocationID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return s.recomputeLocationRating(tx, req.LocationID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrAlreadyReviewed
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordReview(req.Rating)

	review.User = user
	return s.toReviewInfo(review), nil
}

// CreateAnonymousReview 创建匿名评价
// 邮箱已注册则复用该用户身份，否则创建无密码的访客用户
func (s *ReviewService) CreateAnonymousReview(ctx context.Context, req *AnonymousReviewRequest) (*ReviewInfo, error) {
	if !models.IsValidRating(req.Rating) {
		return nil, errors.ErrRatingOutOfRange
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.ErrInvalidParams.WithMessage("邮箱格式不正确")
	}

	// 先校验地点存在，避免提交失败时残留访客用户
	if _, err := s.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLocationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		user = &models.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			// 访客身份无密码，不能登录
			PasswordHash: "",
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			// 并发注册同一邮箱时回查
			if isUniqueViolation(err) {
				user, err = s.userRepo.GetByEmail(ctx, req.Email)
				if err != nil {
					return nil, errors.ErrDatabaseError.WithError(err)
				}
			} else {
				return nil, errors.ErrDatabaseError.WithError(err)
			}
		}
	}

	return s.CreateReview(ctx, user.ID, &CreateReviewRequest{
		LocationID: req.LocationID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
}

// UpdateReview 更新评价
// requesterID 不为空时校验评价归属
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID int64, requesterID *int64, req *UpdateReviewRequest) (*ReviewInfo, error) {
	review, err := s.reviewRepo.GetByIDWithUser(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReviewNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if requesterID != nil && review.UserID != *requesterID {
		return nil, errors.ErrPermissionDenied
	}

	if req.Rating != nil {
		if !models.IsValidRating(*req.Rating) {
			return nil, errors.ErrRatingOutOfRange
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return s.recomputeLocationRating(tx, review.LocationID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrAlreadyReviewed
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return s.toReviewInfo(review), nil
}

// DeleteReview 删除评价
// requesterID 不为空时校验评价归属
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID int64, requesterID *int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if requesterID != nil && review.UserID != *requesterID {
		return errors.ErrPermissionDenied
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Review{}, reviewID).Error; err != nil {
			return err
		}
		return s.recomputeLocationRating(tx, review.LocationID)
	})
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GetReview 获取单条评价
func (s *ReviewService) GetReview(ctx context.Context, reviewID int64) (*ReviewInfo, error) {
	review, err := s.reviewRepo.GetByIDWithUser(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReviewNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.toReviewInfo(review), nil
}

// GetLocationReviews 获取地点评价列表
func (s *ReviewService) GetLocationReviews(ctx context.Context, locationID int64, page, pageSize int) (*ReviewListResponse, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}

	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLocationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	reviews, total, err := s.reviewRepo.ListByLocation(ctx, locationID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	list := make([]*ReviewInfo, 0, len(reviews))
	for _, r := range reviews {
		list = append(list, s.toReviewInfo(r))
	}

	return &ReviewListResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// recomputeLocationRating 全量重算地点评分
// 不做增量维护：直接以评价表为准重新统计，无评价时平均分归 0
func (s *ReviewService) recomputeLocationRating(tx *gorm.DB, locationID int64) error {
	var agg struct {
		Count   int64
		Average float64
	}
	err := tx.Model(&models.Review{}).
		Where("location_id = ?", locationID).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Scan(&agg).Error
	if err != nil {
		return err
	}

	err = tx.Model(&models.Location{}).
		Where("id = ?", locationID).
		Updates(map[string]interface{}{
			"average_rating": utils.RoundRating(agg.Average),
			"review_count":   agg.Count,
		}).Error
	if err != nil {
		return err
	}

	metrics.GetMetrics().RecordRatingRecompute()
	return nil
}

// toReviewInfo 转换为评价信息
func (s *ReviewService) toReviewInfo(review *models.Review) *ReviewInfo {
	info := &ReviewInfo{
		ID:         review.ID,
		UserID:     review.UserID,
		LocationID: review.LocationID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt.Format(time.RFC3339),
	}
	if review.User != nil {
		info.UserName = review.User.FullName()
	}
	return info
}

// isUniqueViolation 是否为唯一约束冲突
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
