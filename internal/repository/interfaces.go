package repository

import (
	"context"

	"sharklink/internal/model"
)

// RedisRepositoryInterface defines the key-value store operations backing
// links, view logs and their ordered indexes
type RedisRepositoryInterface interface {
	GetClient() interface{}
	SaveLink(ctx context.Context, link *model.ShareLink) error
	GetLink(ctx context.Context, linkID string) (*model.ShareLink, error)
	PushOwnerLink(ctx context.Context, ownerID, linkID string) error
	GetOwnerLinkIDs(ctx context.Context, ownerID string) ([]string, error)
	SaveView(ctx context.Context, view *model.ViewLog) error
	GetView(ctx context.Context, viewID string) (*model.ViewLog, error)
	PushLinkView(ctx context.Context, linkID, viewID string) error
	GetLinkViewIDs(ctx context.Context, linkID string) ([]string, error)
	CountLinkViews(ctx context.Context, linkID string) (int64, error)
	Close() error
}

// MySQLRepositoryInterface defines the view-event archive operations
type MySQLRepositoryInterface interface {
	GetDB() interface{}
	SaveViewEvent(ctx context.Context, event *model.ViewEvent) error
	GetViewEvents(ctx context.Context, linkID string, limit int) ([]model.ViewEvent, error)
	CountViewEvents(ctx context.Context, linkID string) (int64, error)
	Close() error
}
