package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/island-tour-backend/internal/common/errors"
	"github.com/dumeirei/island-tour-backend/internal/common/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_Nil(t *testing.T) {
	c, _ := newTestContext()
	assert.False(t, HandleError(c, nil))
}

func TestHandleError_HTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *errors.AppError
		wantStatus int
	}{
		{"参数错误", errors.ErrInvalidParams, http.StatusBadRequest},
		{"评分越界", errors.ErrRatingOutOfRange, http.StatusBadRequest},
		{"入住日期是过去", errors.ErrBookingDatePast, http.StatusBadRequest},
		{"凭证错误", errors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"供应商待审批", errors.ErrVendorNotApproved, http.StatusUnauthorized},
		{"权限不足", errors.ErrPermissionDenied, http.StatusForbidden},
		{"地点不存在", errors.ErrLocationNotFound, http.StatusNotFound},
		{"预订不存在", errors.ErrBookingNotFound, http.StatusNotFound},
		{"邮箱已注册", errors.ErrEmailExists, http.StatusConflict},
		{"重复评价", errors.ErrAlreadyReviewed, http.StatusConflict},
		{"预订已终结", errors.ErrBookingFinalized, http.StatusConflict},
		{"状态迁移不合法", errors.ErrBookingTransition, http.StatusConflict},
		{"限流", errors.ErrRateLimitExceed, http.StatusTooManyRequests},
		{"数据库错误", errors.ErrDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			assert.True(t, HandleError(c, tt.err))
			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decodeBody(t, w)
			assert.Equal(t, tt.err.Code, resp.Code)
			assert.Equal(t, tt.err.Message, resp.Message)
		})
	}
}

func TestHandleError_PlainError(t *testing.T) {
	c, w := newTestContext()
	assert.True(t, HandleError(c, assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, 500, resp.Code)
}

func TestHandleErrorWithMessage_HidesInternalDetail(t *testing.T) {
	c, w := newTestContext()
	assert.True(t, HandleErrorWithMessage(c, assert.AnError, "操作失败"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "操作失败", resp.Message)
}

func TestMustSucceed(t *testing.T) {
	c, w := newTestContext()
	MustSucceed(c, nil, gin.H{"id": 1})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, 0, resp.Code)
}

func TestParseParamID(t *testing.T) {
	c, _ := newTestContext()
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := ParseID(c, "预订")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestParseParamID_Invalid(t *testing.T) {
	c, w := newTestContext()
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := ParseID(c, "预订")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryID(t *testing.T) {
	c, _ := newTestContext()
	c.Request = httptest.NewRequest(http.MethodGet, "/?user_id=7", nil)

	id, ok := ParseQueryID(c, "user_id", "用户")
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)
}

func TestParseQueryID_Empty(t *testing.T) {
	c, _ := newTestContext()

	id, ok := ParseQueryID(c, "user_id", "用户")
	assert.True(t, ok)
	assert.Nil(t, id)
}

func TestBindPagination_Defaults(t *testing.T) {
	c, _ := newTestContext()

	p := BindPagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
}

func TestBindPagination_CapsPageSize(t *testing.T) {
	c, _ := newTestContext()
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&page_size=500", nil)

	p := BindPagination(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PageSize)
}
