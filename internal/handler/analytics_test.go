package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharklink/internal/auth"
	"sharklink/internal/mocks"
	"sharklink/internal/model"
	"sharklink/internal/service"
)

func newAnalyticsRouter(h *AnalyticsHandler, ident *auth.Identity) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), identityMiddleware(ident))
	router.GET("/api/v1/analytics/:linkId", h.Get)
	return router
}

func TestAnalyticsHandler_Get(t *testing.T) {
	newHandler := func(t *testing.T) (*mocks.MockAnalyticsServiceInterface, *AnalyticsHandler) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		mockService := mocks.NewMockAnalyticsServiceInterface(ctrl)
		return mockService, NewAnalyticsHandler(mockService)
	}

	t.Run("no identity", func(t *testing.T) {
		_, handler := newHandler(t)
		router := newAnalyticsRouter(handler, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/abc123defg", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown link", func(t *testing.T) {
		mockService, handler := newHandler(t)
		router := newAnalyticsRouter(handler, testIdentity)

		mockService.EXPECT().Get(gomock.Any(), "nosuchlink", "alice@x.com").Return(nil, service.ErrLinkNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/nosuchlink", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockService, handler := newHandler(t)
		router := newAnalyticsRouter(handler, &auth.Identity{Email: "bob@y.com"})

		mockService.EXPECT().Get(gomock.Any(), "abc123defg", "bob@y.com").Return(nil, service.ErrForbidden)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/abc123defg", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		mockService, handler := newHandler(t)
		router := newAnalyticsRouter(handler, testIdentity)

		mockService.EXPECT().Get(gomock.Any(), "abc123defg", "alice@x.com").Return(&model.AnalyticsReport{
			TotalViews:     3,
			UniqueVisitors: 3,
			AvgDuration:    11,
			DeviceStats: []model.DeviceStat{
				{Device: model.DeviceDesktop, Count: 2},
				{Device: model.DeviceMobile, Count: 1},
			},
		}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/abc123defg", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Code)
		assert.Equal(t, "success", resp.Message)

		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(3), data["totalViews"])
		assert.Equal(t, float64(11), data["avgDuration"])
	})

	t.Run("service failure", func(t *testing.T) {
		mockService, handler := newHandler(t)
		router := newAnalyticsRouter(handler, testIdentity)

		mockService.EXPECT().Get(gomock.Any(), "abc123defg", "alice@x.com").Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/analytics/abc123defg", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
