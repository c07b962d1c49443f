// Package location 提供地点浏览相关的 HTTP Handler
package location

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/island-tour-backend/internal/common/handler"
	locationService "github.com/dumeirei/island-tour-backend/internal/service/location"
)

// Handler 地点浏览处理器
type Handler struct {
	locationService *locationService.LocationService
}

// NewHandler 创建地点浏览处理器
func NewHandler(locationSvc *locationService.LocationService) *Handler {
	return &Handler{
		locationService: locationSvc,
	}
}

// RegisterRoutes 注册地点浏览路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations", h.ListLocations)
	rg.GET("/locations/:id", h.GetLocation)
}

// ListLocations 获取地点列表
// @Summary 获取地点列表
// @Description 按平均评分降序返回在售地点，可按类型过滤
// @Tags 地点
// @Produce json
// @Param type query string false "地点类型" Enums(Hotel, Restaurant, Attraction)
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=location.LocationListResponse}
// @Router /api/v1/locations [get]
func (h *Handler) ListLocations(c *gin.Context) {
	p := handler.BindPagination(c)
	locationType := c.Query("type")

	result, err := h.locationService.ListLocations(c.Request.Context(), locationType, p.Page, p.PageSize)
	handler.MustSucceed(c, err, result)
}

// GetLocation 获取地点详情
// @Summary 获取地点详情
// @Description 附带按展示序号排序的图片和最新评价
// @Tags 地点
// @Produce json
// @Param id path int true "地点ID"
// @Success 200 {object} response.Response{data=location.LocationDetail}
// @Router /api/v1/locations/{id} [get]
func (h *Handler) GetLocation(c *gin.Context) {
	locationID, ok := handler.ParseID(c, "地点")
	if !ok {
		return
	}

	detail, err := h.locationService.GetLocation(c.Request.Context(), locationID)
	handler.MustSucceed(c, err, detail)
}
