package handler

import (
	"context"
	"errors"
	"net/http"

	"sharklink/internal/model"
	"sharklink/internal/mq"
	"sharklink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ViewHandler handles the public tracking surface: view recording,
// dwell-time beacons, target resolution and the viewer page
type ViewHandler struct {
	viewService service.ViewServiceInterface
	linkService service.LinkServiceInterface
	mqProducer  mq.ProducerInterface
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(
	viewService service.ViewServiceInterface,
	linkService service.LinkServiceInterface,
	mqProducer mq.ProducerInterface,
) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
		linkService: linkService,
		mqProducer:  mqProducer,
	}
}

// Track handles POST /api/v1/view/track
// @Summary Record a visit
// @Description Records a view of a share link and returns the view id
// @Tags view
// @Accept json
// @Produce json
// @Param request body model.TrackRequest true "Track request"
// @Success 200 {object} model.TrackResponse
// @Router /api/v1/view/track [post]
func (h *ViewHandler) Track(c *gin.Context) {
	var req model.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Missing linkId",
		})
		return
	}

	// The IP always comes from the connection, not the payload
	req.ClientIP = c.ClientIP()
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}
	if req.Referrer == "" {
		req.Referrer = c.Request.Header.Get("Referer")
	}

	view, err := h.viewService.Record(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Share link not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to track view",
			})
		}
		return
	}

	// Mirror the event to the archive pipeline, fire and forget
	if h.mqProducer != nil {
		msg := &mq.ViewEventMessage{
			LinkID:    view.LinkID,
			ViewID:    view.ViewID,
			IPAddress: view.IPAddress,
			UserAgent: view.UserAgent,
			Referrer:  view.Referrer,
			Device:    view.Device,
			Browser:   view.Browser,
			ViewedAt:  view.ViewedAt,
		}
		// The request context dies with the response, so detach it
		ctx := context.WithoutCancel(c.Request.Context())
		go func() {
			if err := h.mqProducer.SendViewEvent(ctx, msg); err != nil {
				log.Error().Err(err).Str("view_id", msg.ViewID).Msg("Failed to send view event to MQ")
			}
		}()
	}

	c.JSON(http.StatusOK, model.TrackResponse{
		Success: true,
		ViewID:  view.ViewID,
	})
}

// Duration handles POST /api/v1/view/duration
// @Summary Patch a view's dwell time
// @Description Overwrites the duration of a recorded view, sent by the exit beacon
// @Tags view
// @Accept json
// @Produce json
// @Param request body model.DurationRequest true "Duration beacon"
// @Success 200 {object} gin.H
// @Router /api/v1/view/duration [post]
func (h *ViewHandler) Duration(c *gin.Context) {
	var req model.DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ViewID == "" || req.Duration == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Missing parameters",
		})
		return
	}

	if err := h.viewService.UpdateDuration(c.Request.Context(), req.ViewID, *req.Duration); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrViewNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "View not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to update duration",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Target handles GET /api/v1/view/:linkId
// @Summary Resolve the redirect destination for a link
// @Description Returns the Drive viewer URL and file name for a share link
// @Tags view
// @Produce json
// @Param linkId path string true "Link id"
// @Success 200 {object} gin.H
// @Router /api/v1/view/{linkId} [get]
func (h *ViewHandler) Target(c *gin.Context) {
	linkID := c.Param("linkId")

	target, err := h.linkService.ResolveViewTarget(c.Request.Context(), linkID)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Share link not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to resolve view target",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"fileUrl":     target.FileURL,
		"fileName":    target.FileName,
		"requireAuth": target.RequireAuth,
	})
}

// ViewerPage handles GET /v/:linkId
// It renders the transition page that tracks the visit, arms the exit
// beacon and redirects to the Drive viewer.
func (h *ViewHandler) ViewerPage(c *gin.Context) {
	linkID := c.Param("linkId")

	if _, err := h.linkService.Get(c.Request.Context(), linkID); err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{
			"linkId": linkID,
		})
		return
	}

	c.HTML(http.StatusOK, "viewer.html", gin.H{
		"linkId": linkID,
	})
}
