package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharklink/internal/auth"
	"sharklink/internal/mocks"
	"sharklink/internal/model"
	"sharklink/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// identityMiddleware injects a signed-in identity the way the session
// middleware does in production.
func identityMiddleware(ident *auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident != nil {
			c.Set(auth.ContextKey, ident)
		}
		c.Next()
	}
}

func newLinksRouter(h *LinksHandler, ident *auth.Identity) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), identityMiddleware(ident))
	router.POST("/api/v1/links", h.Create)
	router.GET("/api/v1/links", h.List)
	return router
}

var testIdentity = &auth.Identity{
	ID:    "1001",
	Email: "alice@x.com",
	Name:  "Alice",
}

func TestNewLinksHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceInterface(ctrl)
	handler := NewLinksHandler(mockService)

	assert.NotNil(t, handler)
}

func TestLinksHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceInterface(ctrl)
	handler := NewLinksHandler(mockService)
	router := newLinksRouter(handler, testIdentity)

	t.Run("no identity", func(t *testing.T) {
		anonRouter := newLinksRouter(handler, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/links", bytes.NewBufferString(`{"fileId":"f1","fileName":"report.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		anonRouter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/links", bytes.NewBufferString("{invalid json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Contains(t, resp.Message, "Invalid request")
	})

	t.Run("missing fileId field", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/links", bytes.NewBufferString(`{"fileName":"report.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), "alice@x.com", "alice@x.com", gomock.Any()).
			Return(&model.CreateLinkResponse{
				LinkID: "abc123defg",
				URL:    "http://localhost:8080/v/abc123defg",
			}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/links", bytes.NewBufferString(`{"fileId":"f1","fileName":"report.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Code)
		assert.Equal(t, "success", resp.Message)
	})

	t.Run("service validation error", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), "alice@x.com", "alice@x.com", gomock.Any()).
			Return(nil, service.ErrValidation)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/links", bytes.NewBufferString(`{"fileId":"f1","fileName":"report.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), "alice@x.com", "alice@x.com", gomock.Any()).
			Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/links", bytes.NewBufferString(`{"fileId":"f1","fileName":"report.pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLinksHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockLinkServiceInterface(ctrl)
	handler := NewLinksHandler(mockService)
	router := newLinksRouter(handler, testIdentity)

	t.Run("no identity", func(t *testing.T) {
		anonRouter := newLinksRouter(handler, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/links", nil)
		anonRouter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			ListForOwner(gomock.Any(), "alice@x.com").
			Return([]model.ShareLink{
				{LinkID: "abc123defg", FileName: "report.pdf", OwnerID: "alice@x.com", CreatedAt: time.Now(), ViewCount: 3},
			}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/links", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		mockService.EXPECT().
			ListForOwner(gomock.Any(), "alice@x.com").
			Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/links", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
