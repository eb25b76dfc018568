package handler

import (
	"errors"
	"net/http"

	"sharklink/internal/auth"
	"sharklink/internal/model"
	"sharklink/internal/service"

	"github.com/gin-gonic/gin"
)

// LinksHandler handles share link creation and listing
type LinksHandler struct {
	linkService service.LinkServiceInterface
}

// NewLinksHandler creates a new LinksHandler
func NewLinksHandler(linkService service.LinkServiceInterface) *LinksHandler {
	return &LinksHandler{linkService: linkService}
}

// Create handles POST /api/v1/links
// @Summary Create a tracked share link
// @Description Creates a tracked share link for one of the caller's Drive files
// @Tags links
// @Accept json
// @Produce json
// @Param request body model.CreateLinkRequest true "Create request"
// @Success 200 {object} Response{data=model.CreateLinkResponse}
// @Router /api/v1/links [post]
func (h *LinksHandler) Create(c *gin.Context) {
	ident := auth.FromContext(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		})
		return
	}

	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	resp, err := h.linkService.Create(c.Request.Context(), ident.Email, ident.Email, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create share link",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    resp,
	})
}

// List handles GET /api/v1/links
// @Summary List the caller's share links
// @Description Returns the caller's share links, newest first, with live view counts
// @Tags links
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/links [get]
func (h *LinksHandler) List(c *gin.Context) {
	ident := auth.FromContext(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		})
		return
	}

	links, err := h.linkService.ListForOwner(c.Request.Context(), ident.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to list share links",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    gin.H{"links": links},
	})
}

// Response is the standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the error API response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
