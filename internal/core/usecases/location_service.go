package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirrijal/textmaps/internal/core/domain"
	"github.com/samirrijal/textmaps/internal/core/ports"
	"github.com/samirrijal/textmaps/internal/pkg/geospatial"
)

// LocationService owns per-user map state: free-text lookups create or
// overwrite it, navigation commands nudge it.
type LocationService struct {
	locations ports.LocationRepository
	geocoder  ports.Geocoder
}

// NewLocationService creates a new LocationService.
func NewLocationService(locations ports.LocationRepository, geocoder ports.Geocoder) *LocationService {
	return &LocationService{locations: locations, geocoder: geocoder}
}

// Lookup geocodes a free-text query and stores the result as the user's map
// view at the default zoom, replacing whatever was there before.
func (s *LocationService) Lookup(ctx context.Context, userID, query string) (domain.LocationState, error) {
	place, pt, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return domain.LocationState{}, err
	}

	state := domain.LocationState{
		Place: place,
		Lat:   pt.Lat,
		Lon:   pt.Lon,
		Zoom:  domain.DefaultZoom,
	}
	if err := s.locations.Put(ctx, userID, state); err != nil {
		return domain.LocationState{}, &domain.StorageError{Op: "put location", Err: err}
	}

	slog.Info("location stored", "user", userID, "place", place, "lat", pt.Lat, "lon", pt.Lon)
	return state, nil
}

// Move applies one navigation command to the user's stored state and writes
// it back. A command from a user with no stored location is a user error,
// not an implicit state creation.
func (s *LocationService) Move(ctx context.Context, userID string, cmd domain.Command) (domain.LocationState, error) {
	state, err := s.locations.Get(ctx, userID)
	if err != nil {
		return domain.LocationState{}, &domain.StorageError{Op: "get location", Err: err}
	}
	if state == nil {
		return domain.LocationState{}, domain.ErrNeedLocation()
	}

	next, err := ApplyMovement(*state, cmd)
	if err != nil {
		return domain.LocationState{}, err
	}

	if err := s.locations.Put(ctx, userID, next); err != nil {
		return domain.LocationState{}, &domain.StorageError{Op: "put location", Err: err}
	}
	return next, nil
}

// ApplyMovement is the pure state transform behind Move. Pans shift the
// coordinate by the pan distance for the state's current zoom; zoom commands
// step the level by one. Zoom is clamped to the pan table's domain so the
// stored state always resolves to a defined pan entry.
func ApplyMovement(state domain.LocationState, cmd domain.Command) (domain.LocationState, error) {
	switch cmd {
	case domain.CommandZoomIn:
		state.Zoom = geospatial.ClampZoom(state.Zoom + 1)
		return state, nil
	case domain.CommandZoomOut:
		state.Zoom = geospatial.ClampZoom(state.Zoom - 1)
		return state, nil
	}

	axis := geospatial.AxisLat
	if cmd == domain.CommandEast || cmd == domain.CommandWest {
		axis = geospatial.AxisLon
	}
	d, err := geospatial.PanDistance(geospatial.ClampZoom(state.Zoom), axis)
	if err != nil {
		return domain.LocationState{}, fmt.Errorf("pan distance: %w", err)
	}

	switch cmd {
	case domain.CommandNorth:
		state.Lat += d
	case domain.CommandSouth:
		state.Lat -= d
	case domain.CommandEast:
		state.Lon += d
	case domain.CommandWest:
		state.Lon -= d
	default:
		return domain.LocationState{}, fmt.Errorf("unknown navigation command %v", cmd)
	}
	return state, nil
}
