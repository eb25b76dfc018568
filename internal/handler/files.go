package handler

import (
	"net/http"

	"sharklink/internal/auth"
	"sharklink/internal/drive"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// FilesHandler lists the caller's Drive files for link creation
type FilesHandler struct {
	driveClient drive.ClientInterface
}

// NewFilesHandler creates a new FilesHandler
func NewFilesHandler(driveClient drive.ClientInterface) *FilesHandler {
	return &FilesHandler{driveClient: driveClient}
}

// List handles GET /api/v1/drive/files
// @Summary List the caller's Drive files
// @Description Returns the caller's most recently modified Drive files
// @Tags drive
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/drive/files [get]
func (h *FilesHandler) List(c *gin.Context) {
	ident := auth.FromContext(c)
	if ident == nil || ident.AccessToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "No access token",
		})
		return
	}

	files, err := h.driveClient.ListOwnedFiles(c.Request.Context(), ident.AccessToken)
	if err != nil {
		log.Error().Err(err).Str("owner", ident.Email).Msg("Failed to list drive files")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to fetch files from Google Drive",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    gin.H{"files": files},
	})
}
