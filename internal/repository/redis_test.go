package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharklink/internal/config"
	"sharklink/internal/model"
)

func newTestRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})

	return &RedisRepository{
		client: client,
		cfg: &config.RedisConfig{
			Addr:     s.Addr(),
			Password: "",
			DB:       0,
		},
	}, s
}

func testLink(linkID string) *model.ShareLink {
	return &model.ShareLink{
		LinkID:       linkID,
		FileID:       "file-1",
		FileName:     "report.pdf",
		FileMimeType: "application/pdf",
		OwnerID:      "alice@x.com",
		OwnerEmail:   "alice@x.com",
		CreatedAt:    time.Now().Truncate(time.Second),
	}
}

func testView(viewID, linkID string) *model.ViewLog {
	return &model.ViewLog{
		ViewID:    viewID,
		LinkID:    linkID,
		ViewedAt:  time.Now().Truncate(time.Second),
		IPAddress: "203.0.113.10",
		Location:  model.Location{Country: "Germany", City: "Berlin", Region: "BE"},
		UserAgent: "Mozilla/5.0",
		Device:    model.DeviceDesktop,
		Browser:   "Chrome",
	}
}

func TestNewRedisRepository(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	cfg := &config.RedisConfig{
		Addr:     s.Addr(),
		Password: "",
		DB:       0,
	}

	repo := NewRedisRepository(cfg)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.client)
	assert.Equal(t, cfg, repo.cfg)

	// Close connection after test
	repo.Close()
}

func TestRedisRepository_SaveGetLink(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		link := testLink("abc123defg")
		require.NoError(t, repo.SaveLink(ctx, link))

		got, err := repo.GetLink(ctx, "abc123defg")
		require.NoError(t, err)
		assert.Equal(t, link.LinkID, got.LinkID)
		assert.Equal(t, link.FileName, got.FileName)
		assert.Equal(t, link.OwnerID, got.OwnerID)
		assert.True(t, link.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing link returns redis.Nil", func(t *testing.T) {
		_, err := repo.GetLink(ctx, "nosuchlink")
		assert.ErrorIs(t, err, redis.Nil)
	})
}

func TestRedisRepository_OwnerLinkIndex(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	t.Run("push keeps newest first", func(t *testing.T) {
		require.NoError(t, repo.PushOwnerLink(ctx, "alice@x.com", "first"))
		require.NoError(t, repo.PushOwnerLink(ctx, "alice@x.com", "second"))
		require.NoError(t, repo.PushOwnerLink(ctx, "alice@x.com", "third"))

		ids, err := repo.GetOwnerLinkIDs(ctx, "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, ids)
	})

	t.Run("empty index", func(t *testing.T) {
		ids, err := repo.GetOwnerLinkIDs(ctx, "bob@y.com")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestRedisRepository_SaveGetView(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		view := testView("view0000000000001", "abc123defg")
		require.NoError(t, repo.SaveView(ctx, view))

		got, err := repo.GetView(ctx, "view0000000000001")
		require.NoError(t, err)
		assert.Equal(t, view.ViewID, got.ViewID)
		assert.Equal(t, view.LinkID, got.LinkID)
		assert.Equal(t, view.Location, got.Location)
		assert.Equal(t, 0, got.Duration)
	})

	t.Run("missing view returns redis.Nil", func(t *testing.T) {
		_, err := repo.GetView(ctx, "nosuchview")
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("overwrite keeps single record", func(t *testing.T) {
		view := testView("view0000000000002", "abc123defg")
		require.NoError(t, repo.SaveView(ctx, view))

		view.Duration = 42
		require.NoError(t, repo.SaveView(ctx, view))

		got, err := repo.GetView(ctx, "view0000000000002")
		require.NoError(t, err)
		assert.Equal(t, 42, got.Duration)
	})
}

func TestRedisRepository_LinkViewIndex(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	t.Run("push keeps newest first and counts match", func(t *testing.T) {
		require.NoError(t, repo.PushLinkView(ctx, "abc123defg", "v1"))
		require.NoError(t, repo.PushLinkView(ctx, "abc123defg", "v2"))

		ids, err := repo.GetLinkViewIDs(ctx, "abc123defg")
		require.NoError(t, err)
		assert.Equal(t, []string{"v2", "v1"}, ids)

		count, err := repo.CountLinkViews(ctx, "abc123defg")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("count for unknown link is zero", func(t *testing.T) {
		count, err := repo.CountLinkViews(ctx, "nosuchlink")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
