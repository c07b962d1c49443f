// Package repository 评价仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/island-tour-backend/internal/models"
)

func TestReviewRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "reviewer@example.com")
	location := seedLocation(t, db, "海景酒店", nil)

	review := &models.Review{
		UserID:     user.ID,
		LocationID: location.ID,
		Rating:     5,
		Comment:    "风景很好",
	}
	require.NoError(t, repo.Create(ctx, review))
	assert.NotZero(t, review.ID)

	got, err := repo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "风景很好", got.Comment)

	withUser, err := repo.GetByIDWithUser(ctx, review.ID)
	require.NoError(t, err)
	require.NotNil(t, withUser.User)
	assert.Equal(t, "reviewer@example.com", withUser.User.Email)
}

func TestReviewRepository_UniqueUserLocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "dup@example.com")
	location := seedLocation(t, db, "老街餐厅", nil)

	require.NoError(t, repo.Create(ctx, &models.Review{
		UserID: user.ID, LocationID: location.ID, Rating: 4,
	}))

	// 同一用户对同一地点的第二条评价被唯一索引拒绝
	err := repo.Create(ctx, &models.Review{
		UserID: user.ID, LocationID: location.ID, Rating: 2,
	})
	assert.Error(t, err)
}

func TestReviewRepository_GetByUserAndLocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "a@example.com")
	location := seedLocation(t, db, "灯塔景点", nil)

	_, err := repo.GetByUserAndLocation(ctx, user.ID, location.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, &models.Review{
		UserID: user.ID, LocationID: location.ID, Rating: 3,
	}))

	got, err := repo.GetByUserAndLocation(ctx, user.ID, location.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rating)

	exists, err := repo.ExistsByUserAndLocation(ctx, user.ID, location.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUserAndLocation(ctx, user.ID, location.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReviewRepository_Aggregate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	location := seedLocation(t, db, "温泉酒店", nil)

	// 无评价时数量为 0，平均分为 0
	count, avg, err := repo.Aggregate(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 0.0, avg)

	u1 := seedUser(t, db, "u1@example.com")
	u2 := seedUser(t, db, "u2@example.com")
	require.NoError(t, repo.Create(ctx, &models.Review{UserID: u1.ID, LocationID: location.ID, Rating: 5}))
	require.NoError(t, repo.Create(ctx, &models.Review{UserID: u2.ID, LocationID: location.ID, Rating: 3}))

	count, avg, err = repo.Aggregate(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 4.0, avg, 0.001)
}

func TestReviewRepository_ListByLocation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	location := seedLocation(t, db, "渔港餐厅", nil)
	other := seedLocation(t, db, "别处", nil)

	for i, email := range []string{"l1@example.com", "l2@example.com", "l3@example.com"} {
		u := seedUser(t, db, email)
		require.NoError(t, repo.Create(ctx, &models.Review{
			UserID: u.ID, LocationID: location.ID, Rating: i + 1,
		}))
	}
	stranger := seedUser(t, db, "other@example.com")
	require.NoError(t, repo.Create(ctx, &models.Review{
		UserID: stranger.ID, LocationID: other.ID, Rating: 5,
	}))

	reviews, total, err := repo.ListByLocation(ctx, location.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reviews, 3)
	for _, rv := range reviews {
		assert.Equal(t, location.ID, rv.LocationID)
		assert.NotNil(t, rv.User)
	}

	recent, err := repo.ListRecentByLocation(ctx, location.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestReviewRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "ud@example.com")
	location := seedLocation(t, db, "更新测试", nil)

	review := &models.Review{UserID: user.ID, LocationID: location.ID, Rating: 2, Comment: "一般"}
	require.NoError(t, repo.Create(ctx, review))

	review.Rating = 4
	review.Comment = "比想象中好"
	require.NoError(t, repo.Update(ctx, review))

	got, err := repo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)

	require.NoError(t, repo.Delete(ctx, review.ID))
	_, err = repo.GetByID(ctx, review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
