package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sharklink/internal/geo"
	"sharklink/internal/model"
	"sharklink/pkg/util"

	"github.com/mileusna/useragent"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const unknownBrowser = "Unknown"

// ViewService records visits and patches dwell times. Recording must
// never fail because of the geo provider: lookup errors degrade to an
// Unknown location and the view is written regardless.
type ViewService struct {
	redisRepo RedisRepositoryInterface
	geo       GeoResolverInterface
	bloomSvc  BloomServiceInterface
}

// NewViewService creates a new View Service
func NewViewService(redisRepo RedisRepositoryInterface, resolver GeoResolverInterface, bloomSvc BloomServiceInterface) *ViewService {
	return &ViewService{
		redisRepo: redisRepo,
		geo:       resolver,
		bloomSvc:  bloomSvc,
	}
}

// Record ingests one visit: resolves location and client device, writes
// the view log and prepends it to the link's view list
func (s *ViewService) Record(ctx context.Context, req *model.TrackRequest) (*model.ViewLog, error) {
	if req.LinkID == "" {
		return nil, fmt.Errorf("%w: linkId is required", ErrValidation)
	}

	// Bloom filter pre-check. Add is best-effort on the create path
	// and the filter can be reset, so a miss is a hint, not a verdict:
	// the store lookup below stays authoritative.
	if s.bloomSvc != nil {
		exists, err := s.bloomSvc.Exists(ctx, req.LinkID)
		if err != nil {
			log.Warn().Err(err).Str("link_id", req.LinkID).Msg("Bloom Filter check failed")
		} else if !exists {
			log.Debug().Str("link_id", req.LinkID).Msg("Bloom Filter miss, checking store")
		}
	}

	if _, err := s.redisRepo.GetLink(ctx, req.LinkID); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to load share link: %w", err)
	}

	location := s.resolveLocation(ctx, req.ClientIP)
	device, browser := parseUserAgent(req.UserAgent)

	view := &model.ViewLog{
		ViewID:    util.NewViewID(),
		LinkID:    req.LinkID,
		ViewedAt:  time.Now(),
		IPAddress: req.ClientIP,
		Location:  location,
		UserAgent: req.UserAgent,
		Device:    device,
		Browser:   browser,
		Duration:  0,
		Referrer:  req.Referrer,
	}

	if err := s.redisRepo.SaveView(ctx, view); err != nil {
		log.Error().Err(err).Str("view_id", view.ViewID).Msg("Failed to save view log")
		return nil, fmt.Errorf("failed to save view log: %w", err)
	}

	if err := s.redisRepo.PushLinkView(ctx, req.LinkID, view.ViewID); err != nil {
		log.Error().Err(err).Str("view_id", view.ViewID).Msg("Failed to index view log")
		return nil, fmt.Errorf("failed to index view log: %w", err)
	}

	log.Info().
		Str("view_id", view.ViewID).
		Str("link_id", view.LinkID).
		Str("location", fmt.Sprintf("%s, %s", location.City, location.Country)).
		Str("device", device).
		Msg("View tracked")

	return view, nil
}

// UpdateDuration overwrites the dwell time of a recorded view.
// Last write wins; the exit beacon is advisory telemetry and may be
// retried by the browser, so the overwrite is idempotent.
func (s *ViewService) UpdateDuration(ctx context.Context, viewID string, seconds int) error {
	if viewID == "" {
		return fmt.Errorf("%w: viewId is required", ErrValidation)
	}
	if seconds < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}

	view, err := s.redisRepo.GetView(ctx, viewID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrViewNotFound
		}
		return fmt.Errorf("failed to load view log: %w", err)
	}

	view.Duration = seconds
	if err := s.redisRepo.SaveView(ctx, view); err != nil {
		return fmt.Errorf("failed to update view duration: %w", err)
	}

	log.Debug().Str("view_id", viewID).Int("duration", seconds).Msg("Duration updated")
	return nil
}

// resolveLocation maps the client IP to a location, degrading to the
// local placeholder for development traffic and to Unknown on provider
// failure
func (s *ViewService) resolveLocation(ctx context.Context, ip string) model.Location {
	if geo.IsLocalAddress(ip) {
		return geo.LocalLocation()
	}

	location, err := s.geo.Resolve(ctx, ip)
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("Geo lookup failed, using Unknown location")
		return geo.UnknownLocation()
	}
	return location
}

// parseUserAgent derives the device class and browser name from the
// visitor's user-agent string
func parseUserAgent(uaString string) (device, browser string) {
	ua := useragent.Parse(uaString)

	switch {
	case ua.Mobile:
		device = model.DeviceMobile
	case ua.Tablet:
		device = model.DeviceTablet
	default:
		device = model.DeviceDesktop
	}

	browser = ua.Name
	if browser == "" {
		browser = unknownBrowser
	}
	return device, browser
}
