package model

import (
	"time"
)

// ShareLink represents a tracked share link for a Drive file
type ShareLink struct {
	LinkID       string     `json:"linkId"`
	FileID       string     `json:"fileId"`
	FileName     string     `json:"fileName"`
	FileMimeType string     `json:"fileMimeType"`
	OwnerID      string     `json:"ownerId"`
	OwnerEmail   string     `json:"ownerEmail"`
	CreatedAt    time.Time  `json:"createdAt"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	RequireAuth  bool       `json:"requireAuth"`
	Password     string     `json:"password,omitempty"`

	// ViewCount is derived from the length of the link's view log
	// at read time; it is never stored authoritatively.
	ViewCount int64 `json:"viewCount"`
}

// IsExpired checks whether the link has an expiry in the past
func (sl *ShareLink) IsExpired() bool {
	return sl.ExpiresAt != nil && time.Now().After(*sl.ExpiresAt)
}

// CreateLinkRequest represents the request to create a share link
type CreateLinkRequest struct {
	FileID       string `json:"fileId" binding:"required"`
	FileName     string `json:"fileName" binding:"required"`
	FileMimeType string `json:"fileMimeType"`
	RequireAuth  bool   `json:"requireAuth"`
}

// CreateLinkResponse represents the response of share link creation
type CreateLinkResponse struct {
	LinkID string     `json:"linkId"`
	URL    string     `json:"url"`
	Link   *ShareLink `json:"link"`
}

// ViewTarget represents the destination a visitor is redirected to
type ViewTarget struct {
	FileURL     string `json:"fileUrl"`
	FileName    string `json:"fileName"`
	RequireAuth bool   `json:"requireAuth"`
}

// DriveFile represents a file entry from the owner's Drive
type DriveFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	WebViewLink   string `json:"webViewLink,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	IconLink      string `json:"iconLink,omitempty"`
	ModifiedTime  string `json:"modifiedTime,omitempty"`
	Size          int64  `json:"size,omitempty"`
}
