package service

import (
	"context"

	"place-resolver/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type coordinate struct {
	lat  float64
	long float64
}

// fillGaps normalizes stored locations and, for those without any captured address,
// reverse geocodes their coordinates to fill in the blanks.
//
// The result follows the order in which ids were first seen. Callers must not rely on it.
func (s *ResolveService) fillGaps(ctx context.Context, locations []models.StoredLocation) ([]models.ResolvedPlace, error) {
	ids := make([]int64, 0, len(locations))
	records := make(map[int64]models.StoredLocation, len(locations))
	for _, loc := range locations {
		if _, seen := records[loc.ID]; !seen {
			ids = append(ids, loc.ID)
		}
		records[loc.ID] = loc
	}

	places := make(map[int64]models.ResolvedPlace, len(ids))
	var missingIDs []int64
	missing := make(map[int64]coordinate)
	for _, id := range ids {
		loc := records[id]
		place := normalizeStored(loc)
		places[id] = place
		if hasMissingAddress(place) {
			missingIDs = append(missingIDs, id)
			missing[id] = coordinate{lat: loc.Latitude, long: loc.Longitude}
		}
	}

	if len(missingIDs) > 0 {
		log.Debug().Int("count", len(missingIDs)).Msg("service: reverse geocoding locations without address")

		// each branch owns its slot, so no locking is needed
		results := make([][]models.RemoteFeature, len(missingIDs))

		var g errgroup.Group
		if s.maxConcurrency > 0 {
			g.SetLimit(s.maxConcurrency)
		}
		for i, id := range missingIDs {
			i, id := i, id
			c := missing[id]
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						log.Error().Interface("panic", r).Int64("location_id", id).Msg("service: reverse geocode fallback panicked")
					}
				}()
				results[i] = s.remote.SearchByCoordinates(ctx, c.lat, c.long)
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for i, id := range missingIDs {
			if len(results[i]) == 0 {
				continue
			}
			places[id] = overlay(places[id], normalizeRemote(results[i][0]))
		}
	}

	resolved := make([]models.ResolvedPlace, 0, len(ids))
	for _, id := range ids {
		resolved = append(resolved, places[id])
	}
	return resolved, nil
}
