package mq

import (
	"time"
)

// ViewEventMessage mirrors a recorded view into the archive pipeline
type ViewEventMessage struct {
	LinkID    string    `json:"link_id"`
	ViewID    string    `json:"view_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	Device    string    `json:"device"`
	Browser   string    `json:"browser"`
	ViewedAt  time.Time `json:"viewed_at"`
}
