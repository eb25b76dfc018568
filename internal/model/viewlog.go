package model

import (
	"time"
)

// Device type values derived from the visitor's user agent
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// Location is the IP-derived location of a visitor
type Location struct {
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// ViewLog represents one recorded visit to a share link.
// Duration is the only field mutated after creation.
type ViewLog struct {
	ViewID    string    `json:"viewId"`
	LinkID    string    `json:"linkId"`
	ViewedAt  time.Time `json:"viewedAt"`
	IPAddress string    `json:"ipAddress"`
	Location  Location  `json:"location"`
	UserAgent string    `json:"userAgent"`
	Device    string    `json:"device"`
	Browser   string    `json:"browser"`
	Duration  int       `json:"duration"`
	Referrer  string    `json:"referrer,omitempty"`
}

// TrackRequest represents the request to record a view
type TrackRequest struct {
	LinkID    string `json:"linkId" binding:"required"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`

	// ClientIP is filled in by the handler from the connection,
	// never taken from the request body.
	ClientIP string `json:"-"`
}

// TrackResponse represents the response of view tracking
type TrackResponse struct {
	Success bool   `json:"success"`
	ViewID  string `json:"viewId"`
}

// DurationRequest represents the beacon payload patching a view's duration
type DurationRequest struct {
	ViewID   string `json:"viewId"`
	Duration *int   `json:"duration"`
}

// CountStat is one grouped bucket in an analytics breakdown
type CountStat struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// LocationStat is a per-location view count
type LocationStat struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// DeviceStat is a per-device view count
type DeviceStat struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

// BrowserStat is a per-browser view count
type BrowserStat struct {
	Browser string `json:"browser"`
	Count   int64  `json:"count"`
}

// AnalyticsReport is the owner-facing summary of a link's view log
type AnalyticsReport struct {
	Link           *ShareLink     `json:"link"`
	TotalViews     int64          `json:"totalViews"`
	UniqueVisitors int64          `json:"uniqueVisitors"`
	AvgDuration    int            `json:"avgDuration"`
	LastViewedAt   *time.Time     `json:"lastViewedAt"`
	Views          []ViewLog      `json:"views"`
	LocationStats  []LocationStat `json:"locationStats"`
	DeviceStats    []DeviceStat   `json:"deviceStats"`
	BrowserStats   []BrowserStat  `json:"browserStats"`
}

// ViewEvent is the durable archive row mirrored from the view log via MQ
type ViewEvent struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ViewID    string    `json:"view_id" gorm:"type:varchar(32);uniqueIndex;not null"`
	LinkID    string    `json:"link_id" gorm:"type:varchar(16);index;not null"`
	IPAddress string    `json:"ip_address" gorm:"type:varchar(64)"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(512)"`
	Referrer  string    `json:"referrer" gorm:"type:varchar(512)"`
	Device    string    `json:"device" gorm:"type:varchar(16)"`
	Browser   string    `json:"browser" gorm:"type:varchar(64)"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"index"`
}

// TableName returns the table name for ViewEvent
func (ViewEvent) TableName() string {
	return "view_events"
}
