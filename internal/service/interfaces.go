package service

import (
	"context"

	"sharklink/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisRepositoryInterface defines the interface for Redis operations (for testing)
type RedisRepositoryInterface interface {
	GetClient() *redis.Client
	SaveLink(ctx context.Context, link *model.ShareLink) error
	GetLink(ctx context.Context, linkID string) (*model.ShareLink, error)
	PushOwnerLink(ctx context.Context, ownerID, linkID string) error
	GetOwnerLinkIDs(ctx context.Context, ownerID string) ([]string, error)
	SaveView(ctx context.Context, view *model.ViewLog) error
	GetView(ctx context.Context, viewID string) (*model.ViewLog, error)
	PushLinkView(ctx context.Context, linkID, viewID string) error
	GetLinkViewIDs(ctx context.Context, linkID string) ([]string, error)
	CountLinkViews(ctx context.Context, linkID string) (int64, error)
}

// GeoResolverInterface defines the interface for IP geolocation (for testing)
type GeoResolverInterface interface {
	Resolve(ctx context.Context, ip string) (model.Location, error)
}

// BloomServiceInterface defines the interface for Bloom Filter operations (for testing)
type BloomServiceInterface interface {
	Add(ctx context.Context, linkID string) error
	Exists(ctx context.Context, linkID string) (bool, error)
	GetCapacity() int64
	IsAvailable(ctx context.Context) bool
	Reset(ctx context.Context) error
}

// LinkServiceInterface defines the interface for share link operations
type LinkServiceInterface interface {
	Create(ctx context.Context, ownerID, ownerEmail string, req *model.CreateLinkRequest) (*model.CreateLinkResponse, error)
	Get(ctx context.Context, linkID string) (*model.ShareLink, error)
	ListForOwner(ctx context.Context, ownerID string) ([]model.ShareLink, error)
	ResolveViewTarget(ctx context.Context, linkID string) (*model.ViewTarget, error)
}

// ViewServiceInterface defines the interface for view recording operations
type ViewServiceInterface interface {
	Record(ctx context.Context, req *model.TrackRequest) (*model.ViewLog, error)
	UpdateDuration(ctx context.Context, viewID string, seconds int) error
}

// AnalyticsServiceInterface defines the interface for analytics operations
type AnalyticsServiceInterface interface {
	Get(ctx context.Context, linkID, requesterID string) (*model.AnalyticsReport, error)
}
