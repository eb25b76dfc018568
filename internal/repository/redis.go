package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sharklink/internal/config"
	"sharklink/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis key layout:
//
//	link:{linkId}        -> ShareLink JSON
//	link:{linkId}:views  -> list of viewIds, newest first (LPUSH)
//	view:{viewId}        -> ViewLog JSON
//	user:{ownerId}:links -> list of linkIds, newest first (LPUSH)
const (
	LinkKeyPrefix = "link:"
	ViewKeyPrefix = "view:"
	UserKeyPrefix = "user:"
)

// RedisRepository handles Redis operations
type RedisRepository struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
	} else {
		log.Info().Msg("Redis connected successfully")
	}

	return &RedisRepository{
		client: rdb,
		cfg:    cfg,
	}
}

// GetClient returns the Redis client
func (r *RedisRepository) GetClient() *redis.Client {
	return r.client
}

// SaveLink stores a share link record
func (r *RedisRepository) SaveLink(ctx context.Context, link *model.ShareLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal share link: %w", err)
	}
	return r.client.Set(ctx, r.linkKey(link.LinkID), data, 0).Err()
}

// GetLink retrieves a share link record. Returns redis.Nil when absent.
func (r *RedisRepository) GetLink(ctx context.Context, linkID string) (*model.ShareLink, error) {
	data, err := r.client.Get(ctx, r.linkKey(linkID)).Bytes()
	if err != nil {
		return nil, err
	}

	var link model.ShareLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal share link %s: %w", linkID, err)
	}
	return &link, nil
}

// PushOwnerLink prepends a linkId to the owner's link index.
// LPUSH is atomic per call, so concurrent creates never race on the index.
func (r *RedisRepository) PushOwnerLink(ctx context.Context, ownerID, linkID string) error {
	return r.client.LPush(ctx, r.ownerKey(ownerID), linkID).Err()
}

// GetOwnerLinkIDs returns the owner's linkIds, newest first
func (r *RedisRepository) GetOwnerLinkIDs(ctx context.Context, ownerID string) ([]string, error) {
	return r.client.LRange(ctx, r.ownerKey(ownerID), 0, -1).Result()
}

// SaveView stores a view log record
func (r *RedisRepository) SaveView(ctx context.Context, view *model.ViewLog) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal view log: %w", err)
	}
	return r.client.Set(ctx, r.viewKey(view.ViewID), data, 0).Err()
}

// GetView retrieves a view log record. Returns redis.Nil when absent.
func (r *RedisRepository) GetView(ctx context.Context, viewID string) (*model.ViewLog, error) {
	data, err := r.client.Get(ctx, r.viewKey(viewID)).Bytes()
	if err != nil {
		return nil, err
	}

	var view model.ViewLog
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view log %s: %w", viewID, err)
	}
	return &view, nil
}

// PushLinkView prepends a viewId to the link's view log list
func (r *RedisRepository) PushLinkView(ctx context.Context, linkID, viewID string) error {
	return r.client.LPush(ctx, r.linkViewsKey(linkID), viewID).Err()
}

// GetLinkViewIDs returns the link's viewIds, newest first
func (r *RedisRepository) GetLinkViewIDs(ctx context.Context, linkID string) ([]string, error) {
	return r.client.LRange(ctx, r.linkViewsKey(linkID), 0, -1).Result()
}

// CountLinkViews returns the length of the link's view log list
func (r *RedisRepository) CountLinkViews(ctx context.Context, linkID string) (int64, error) {
	return r.client.LLen(ctx, r.linkViewsKey(linkID)).Result()
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Helper functions to build Redis keys

func (r *RedisRepository) linkKey(linkID string) string {
	return LinkKeyPrefix + linkID
}

func (r *RedisRepository) linkViewsKey(linkID string) string {
	return LinkKeyPrefix + linkID + ":views"
}

func (r *RedisRepository) viewKey(viewID string) string {
	return ViewKeyPrefix + viewID
}

func (r *RedisRepository) ownerKey(ownerID string) string {
	return UserKeyPrefix + ownerID + ":links"
}
