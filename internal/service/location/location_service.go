// Package location 提供面向旅行者的地点浏览服务
package location

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/models"
	"github.com/dumeirei/island-tour-backend/internal/repository"
)

// 详情页附带的最新评价条数
const recentReviewLimit = 10

// LocationService 地点浏览服务
type LocationService struct {
	db           *gorm.DB
	locationRepo *repository.LocationRepository
	reviewRepo   *repository.ReviewRepository
}

// NewLocationService 创建地点浏览服务
func NewLocationService(
	db *gorm.DB,
	locationRepo *repository.LocationRepository,
	reviewRepo *repository.ReviewRepository,
) *LocationService {
	return &LocationService{
		db:           db,
		locationRepo: locationRepo,
		reviewRepo:   reviewRepo,
	}
}

// LocationSummary 地点概要
type LocationSummary struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Address       string              `json:"address"`
	Type          models.LocationType `json:"type"`
	ImageURL      *string             `json:"image_url,omitempty"`
	AverageRating float64             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
}

// LocationListResponse 地点列表响应
type LocationListResponse struct {
	List     []*LocationSummary `json:"list"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ImageInfo 地点图片
type ImageInfo struct {
	ID           int64   `json:"id"`
	ImageURL     string  `json:"image_url"`
	Caption      *string `json:"caption,omitempty"`
	DisplayOrder int     `json:"display_order"`
}

// ReviewInfo 评价摘要
type ReviewInfo struct {
	ID        int64  `json:"id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// LocationDetail 地点详情
type LocationDetail struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Address       string              `json:"address"`
	Type          models.LocationType `json:"type"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	PhoneNumber   *string             `json:"phone_number,omitempty"`
	Website       *string             `json:"website,omitempty"`
	ImageURL      *string             `json:"image_url,omitempty"`
	AverageRating float64             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
	Images        []*ImageInfo        `json:"images"`
	RecentReviews []*ReviewInfo       `json:"recent_reviews"`
}

// ListLocations 获取地点列表
// 可按类型过滤，结果按平均评分降序
func (s *LocationService) ListLocations(ctx context.Context, locationType string, page, pageSize int) (*LocationListResponse, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}

	params := repository.LocationListParams{
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		OnlyActive: true,
	}
	if locationType != "" {
		lt := models.LocationType(locationType)
		if !lt.IsValid() {
			return nil, errors.ErrLocationTypeInvalid
		}
		params.Type = &lt
	}

	locations, total, err := s.locationRepo.List(ctx, params)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	list := make([]*LocationSummary, 0, len(locations))
	for _, l := range locations {
		list = append(list, &LocationSummary{
			ID:            l.ID,
			Name:          l.Name,
			Address:       l.Address,
			Type:          l.Type,
			ImageURL:      l.ImageURL,
			AverageRating: l.AverageRating,
			ReviewCount:   l.ReviewCount,
		})
	}

	return &LocationListResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetLocation 获取地点详情
// 附带按展示序号排序的图片和最新评价
func (s *LocationService) GetLocation(ctx context.Context, locationID int64) (*LocationDetail, error) {
	location, err := s.locationRepo.GetByIDWithImages(ctx, locationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrLocationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	reviews, err := s.reviewRepo.ListRecentByLocation(ctx, locationID, recentReviewLimit)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	detail := &LocationDetail{
		ID:            location.ID,
		Name:          location.Name,
		Description:   location.Description,
		Address:       location.Address,
		Type:          location.Type,
		Latitude:      location.Latitude,
		Longitude:     location.Longitude,
		PhoneNumber:   location.PhoneNumber,
		Website:       location.Website,
		ImageURL:      location.ImageURL,
		AverageRating: location.AverageRating,
		ReviewCount:   location.ReviewCount,
		Images:        make([]*ImageInfo, 0, len(location.Images)),
		RecentReviews: make([]*ReviewInfo, 0, len(reviews)),
	}

	for i := range location.Images {
		img := &location.Images[i]
		detail.Images = append(detail.Images, &ImageInfo{
			ID:           img.ID,
			ImageURL:     img.ImageURL,
			Caption:      img.Caption,
			DisplayOrder: img.DisplayOrder,
		})
	}

	for _, r := range reviews {
		info := &ReviewInfo{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
		if r.User != nil {
			info.UserName = r.User.FullName()
		}
		detail.RecentReviews = append(detail.RecentReviews, info)
	}

	return detail, nil
}
