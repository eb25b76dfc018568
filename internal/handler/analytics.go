package handler

import (
	"errors"
	"net/http"

	"sharklink/internal/auth"
	"sharklink/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves owner-scoped link analytics
type AnalyticsHandler struct {
	analyticsService service.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService service.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Get handles GET /api/v1/analytics/:linkId
// @Summary Get analytics for a share link
// @Description Returns view totals, uniques, breakdowns and recent views for a link owned by the caller
// @Tags analytics
// @Produce json
// @Param linkId path string true "Link id"
// @Success 200 {object} Response{data=model.AnalyticsReport}
// @Router /api/v1/analytics/{linkId} [get]
func (h *AnalyticsHandler) Get(c *gin.Context) {
	ident := auth.FromContext(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		})
		return
	}

	linkID := c.Param("linkId")

	report, err := h.analyticsService.Get(c.Request.Context(), linkID, ident.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Share link not found",
			})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: "Forbidden",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to get analytics",
			})
		}
		return
	}

	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    report,
	})
}
