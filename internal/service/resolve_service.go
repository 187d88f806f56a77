package service

import (
	"context"
	"fmt"
	"strings"

	"place-resolver/internal/models"

	"github.com/rs/zerolog/log"
)

// LocationStore is the spatial store the resolver reads from
type LocationStore interface {
	FindByText(ctx context.Context, tokens []string) ([]models.StoredLocation, error)
	FindByCoordinates(ctx context.Context, lat, lon float64) ([]models.StoredLocation, error)
}

// RemoteGeocoder looks places up with an external provider. Implementations must
// not fail: any error is reported as an empty result.
type RemoteGeocoder interface {
	SearchByText(ctx context.Context, text string) []models.RemoteFeature
	SearchByCoordinates(ctx context.Context, lat, lon float64) []models.RemoteFeature
}

// ResolveService resolves free text or coordinates to places, preferring the local
// store and falling back to the remote geocoder.
type ResolveService struct {
	store          LocationStore
	remote         RemoteGeocoder
	maxConcurrency int
}

// Option customises a ResolveService.
type Option func(*ResolveService)

// WithMaxConcurrency bounds the number of reverse geocode fallbacks running at once.
// Zero or less means unbounded.
func WithMaxConcurrency(n int) Option {
	return func(s *ResolveService) {
		s.maxConcurrency = n
	}
}

// NewResolveService creates a new resolve service
func NewResolveService(store LocationStore, remote RemoteGeocoder, opts ...Option) *ResolveService {
	s := &ResolveService{store: store, remote: remote}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve classifies query and looks it up.
//
// It returns ErrInvalidInput for an empty query and a *ResolutionError when the
// store fails. The order of the returned places is unspecified.
func (s *ResolveService) Resolve(ctx context.Context, query string) ([]models.ResolvedPlace, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrInvalidInput)
	}

	q, err := Classify(query)
	if err != nil {
		return nil, err
	}

	switch q := q.(type) {
	case CoordinatePair:
		return s.resolveCoordinates(ctx, q.Lat, q.Long)
	case FreeText:
		return s.resolveText(ctx, q)
	default:
		return nil, fmt.Errorf("%w: unsupported query", ErrInvalidInput)
	}
}

// ResolveCoordinates looks up a point directly, skipping classification.
func (s *ResolveService) ResolveCoordinates(ctx context.Context, lat, long float64) ([]models.ResolvedPlace, error) {
	if !validCoordinates(lat, long) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	return s.resolveCoordinates(ctx, lat, long)
}

func (s *ResolveService) resolveCoordinates(ctx context.Context, lat, long float64) ([]models.ResolvedPlace, error) {
	locations, err := s.store.FindByCoordinates(ctx, lat, long)
	if err != nil {
		return nil, &ResolutionError{Cause: err}
	}

	if len(locations) > 0 {
		places, err := s.fillGaps(ctx, locations)
		if err != nil {
			return nil, &ResolutionError{Cause: err}
		}
		log.Debug().Str("strategy", "store").Str("query", "coordinates").Int("results", len(places)).Msg("service: resolved")
		return places, nil
	}

	places := normalizeRemoteAll(s.remote.SearchByCoordinates(ctx, lat, long))
	log.Debug().Str("strategy", "remote").Str("query", "coordinates").Int("results", len(places)).Msg("service: resolved")
	return places, nil
}

func (s *ResolveService) resolveText(ctx context.Context, q FreeText) ([]models.ResolvedPlace, error) {
	locations, err := s.store.FindByText(ctx, q.Tokens)
	if err != nil {
		return nil, &ResolutionError{Cause: err}
	}

	if len(locations) > 0 {
		places, err := s.fillGaps(ctx, locations)
		if err != nil {
			return nil, &ResolutionError{Cause: err}
		}
		log.Debug().Str("strategy", "store").Str("query", "text").Int("results", len(places)).Msg("service: resolved")
		return places, nil
	}

	places := normalizeRemoteAll(s.remote.SearchByText(ctx, q.Text))
	log.Debug().Str("strategy", "remote").Str("query", "text").Int("results", len(places)).Msg("service: resolved")
	return places, nil
}
