// Package repository 地点图片仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

func TestLocationImageRepository_MaxDisplayOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationImageRepository(db)
	ctx := context.Background()

	location := seedLocation(t, db, "序号测试", nil)

	// 无图片时返回 -1，第一张图序号即为 -1+1=0
	max, err := repo.MaxDisplayOrder(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, max)

	require.NoError(t, repo.Create(ctx, &models.LocationImage{
		LocationID: location.ID, ImageURL: "u1", DisplayOrder: 0,
	}))
	require.NoError(t, repo.Create(ctx, &models.LocationImage{
		LocationID: location.ID, ImageURL: "u2", DisplayOrder: 1,
	}))

	max, err = repo.MaxDisplayOrder(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, max)
}

func TestLocationImageRepository_DeleteKeepsGaps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationImageRepository(db)
	ctx := context.Background()

	location := seedLocation(t, db, "空洞测试", nil)

	var images []*models.LocationImage
	for i := 0; i < 3; i++ {
		img := &models.LocationImage{LocationID: location.ID, ImageURL: "u", DisplayOrder: i}
		require.NoError(t, repo.Create(ctx, img))
		images = append(images, img)
	}

	// 删除中间一张，剩余序号不重排
	require.NoError(t, repo.Delete(ctx, images[1].ID))

	remaining, err := repo.ListByLocation(ctx, location.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 0, remaining[0].DisplayOrder)
	assert.Equal(t, 2, remaining[1].DisplayOrder)

	// 下一张新图取最大值+1
	max, err := repo.MaxDisplayOrder(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, max)
}

func TestLocationImageRepository_GetByIDAndLocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationImageRepository(db)
	ctx := context.Background()

	l1 := seedLocation(t, db, "地点甲", nil)
	l2 := seedLocation(t, db, "地点乙", nil)

	img := &models.LocationImage{LocationID: l1.ID, ImageURL: "u", DisplayOrder: 0}
	require.NoError(t, repo.Create(ctx, img))

	got, err := repo.GetByIDAndLocation(ctx, img.ID, l1.ID)
	require.NoError(t, err)
	assert.Equal(t, img.ID, got.ID)

	// 图片不属于该地点时视为不存在
	_, err = repo.GetByIDAndLocation(ctx, img.ID, l2.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
