package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"sharklink/internal/drive"
	"sharklink/internal/model"
	"sharklink/pkg/util"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultMimeType = "application/octet-stream"

// LinkService handles share link lifecycle: creation, lookup and
// owner-scoped listing
type LinkService struct {
	redisRepo RedisRepositoryInterface
	bloomSvc  BloomServiceInterface
	baseURL   string
}

// NewLinkService creates a new Link Service
func NewLinkService(redisRepo RedisRepositoryInterface, bloomSvc BloomServiceInterface, baseURL string) *LinkService {
	return &LinkService{
		redisRepo: redisRepo,
		bloomSvc:  bloomSvc,
		baseURL:   baseURL,
	}
}

// Create builds and persists a new share link for the owner's file
func (s *LinkService) Create(ctx context.Context, ownerID, ownerEmail string, req *model.CreateLinkRequest) (*model.CreateLinkResponse, error) {
	if req.FileID == "" || req.FileName == "" {
		return nil, fmt.Errorf("%w: fileId and fileName are required", ErrValidation)
	}

	mimeType := req.FileMimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	link := &model.ShareLink{
		LinkID:       util.NewLinkID(),
		FileID:       req.FileID,
		FileName:     req.FileName,
		FileMimeType: mimeType,
		OwnerID:      ownerID,
		OwnerEmail:   ownerEmail,
		CreatedAt:    time.Now(),
		RequireAuth:  req.RequireAuth,
		ViewCount:    0,
	}

	if err := s.redisRepo.SaveLink(ctx, link); err != nil {
		log.Error().Err(err).Str("link_id", link.LinkID).Msg("Failed to save share link")
		return nil, fmt.Errorf("failed to save share link: %w", err)
	}

	// LPUSH keeps the index newest-first and is atomic per call, so
	// concurrent creates for the same owner never clobber each other.
	if err := s.redisRepo.PushOwnerLink(ctx, ownerID, link.LinkID); err != nil {
		log.Error().Err(err).Str("link_id", link.LinkID).Msg("Failed to index share link")
		return nil, fmt.Errorf("failed to index share link: %w", err)
	}

	if s.bloomSvc != nil {
		if err := s.bloomSvc.Add(ctx, link.LinkID); err != nil {
			log.Warn().Err(err).Str("link_id", link.LinkID).Msg("Failed to add to Bloom Filter")
		}
	}

	log.Info().
		Str("link_id", link.LinkID).
		Str("owner", ownerID).
		Str("file_name", link.FileName).
		Msg("Share link created")

	return &model.CreateLinkResponse{
		LinkID: link.LinkID,
		URL:    fmt.Sprintf("%s/v/%s", s.baseURL, link.LinkID),
		Link:   link,
	}, nil
}

// Get retrieves a share link by id
func (s *LinkService) Get(ctx context.Context, linkID string) (*model.ShareLink, error) {
	link, err := s.redisRepo.GetLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to load share link: %w", err)
	}
	return link, nil
}

// ListForOwner returns the owner's links, newest first. Ids in the index
// that no longer resolve are skipped. View counts are recomputed from the
// view log length so they cannot drift from the log.
func (s *LinkService) ListForOwner(ctx context.Context, ownerID string) ([]model.ShareLink, error) {
	linkIDs, err := s.redisRepo.GetOwnerLinkIDs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner link index: %w", err)
	}

	links := make([]model.ShareLink, 0, len(linkIDs))
	for _, linkID := range linkIDs {
		link, err := s.redisRepo.GetLink(ctx, linkID)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Warn().Err(err).Str("link_id", linkID).Msg("Failed to resolve indexed link")
			}
			continue
		}

		count, err := s.redisRepo.CountLinkViews(ctx, linkID)
		if err != nil {
			log.Warn().Err(err).Str("link_id", linkID).Msg("Failed to count link views")
			count = 0
		}
		link.ViewCount = count

		links = append(links, *link)
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

// ResolveViewTarget returns the destination viewer URL for a link
func (s *LinkService) ResolveViewTarget(ctx context.Context, linkID string) (*model.ViewTarget, error) {
	link, err := s.Get(ctx, linkID)
	if err != nil {
		return nil, err
	}

	return &model.ViewTarget{
		FileURL:     drive.ViewerLink(link.FileID),
		FileName:    link.FileName,
		RequireAuth: link.RequireAuth,
	}, nil
}
