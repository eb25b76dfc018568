package drive

import (
	"context"
	"fmt"

	"sharklink/internal/model"

	"golang.org/x/oauth2"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	listPageSize  = 50
	listFields    = "files(id, name, mimeType, webViewLink, thumbnailLink, iconLink, modifiedTime, size)"
	listQuery     = "mimeType != 'application/vnd.google-apps.folder' and trashed = false"
	listOrder     = "modifiedTime desc"
	viewerLinkFmt = "https://drive.google.com/file/d/%s/preview"
)

// ClientInterface is the thin wrapper over the Drive API consumed by
// the file-listing handler and the link service
type ClientInterface interface {
	ListOwnedFiles(ctx context.Context, accessToken string) ([]model.DriveFile, error)
	GetFileMetadata(ctx context.Context, accessToken, fileID string) (*model.DriveFile, error)
}

// Client wraps the Google Drive v3 API
type Client struct{}

// NewClient creates a new Drive client
func NewClient() *Client {
	return &Client{}
}

func (c *Client) service(ctx context.Context, accessToken string) (*drivev3.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := drivev3.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

// ListOwnedFiles returns the caller's most recently modified files,
// excluding folders and trashed entries
func (c *Client) ListOwnedFiles(ctx context.Context, accessToken string) ([]model.DriveFile, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Files.List().
		Context(ctx).
		PageSize(listPageSize).
		Fields(listFields).
		OrderBy(listOrder).
		Q(listQuery).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drive files: %w", err)
	}

	files := make([]model.DriveFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, toDriveFile(f))
	}
	return files, nil
}

// GetFileMetadata fetches a single file's metadata
func (c *Client) GetFileMetadata(ctx context.Context, accessToken, fileID string) (*model.DriveFile, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	f, err := svc.Files.Get(fileID).
		Context(ctx).
		Fields("id, name, mimeType, webViewLink, thumbnailLink, iconLink, modifiedTime, size").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}

	file := toDriveFile(f)
	return &file, nil
}

// ViewerLink builds the public Drive preview URL for a file
func ViewerLink(fileID string) string {
	return fmt.Sprintf(viewerLinkFmt, fileID)
}

func toDriveFile(f *drivev3.File) model.DriveFile {
	return model.DriveFile{
		ID:            f.Id,
		Name:          f.Name,
		MimeType:      f.MimeType,
		WebViewLink:   f.WebViewLink,
		ThumbnailLink: f.ThumbnailLink,
		IconLink:      f.IconLink,
		ModifiedTime:  f.ModifiedTime,
		Size:          f.Size,
	}
}
