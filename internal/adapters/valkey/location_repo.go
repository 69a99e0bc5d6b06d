package valkey

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

// LocationRepo implements ports.LocationRepository as a flat field map per
// user (lat, lon, zoom, place), the single source of truth for the user's
// map view. Every Get hits the store; nothing is cached in-process.
type LocationRepo struct {
	c *Client
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(c *Client) *LocationRepo {
	return &LocationRepo{c: c}
}

func locationKey(userID string) string {
	return "loc:" + userID
}

// Get returns the stored state for a user, or (nil, nil) if none exists.
func (r *LocationRepo) Get(ctx context.Context, userID string) (*domain.LocationState, error) {
	cl := r.c.client
	fields, err := cl.Do(ctx, cl.B().Hgetall().Key(locationKey(userID)).Build()).AsStrMap()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(fields["lat"], 64)
	if err != nil {
		return nil, fmt.Errorf("stored lat for %s: %w", userID, err)
	}
	lon, err := strconv.ParseFloat(fields["lon"], 64)
	if err != nil {
		return nil, fmt.Errorf("stored lon for %s: %w", userID, err)
	}
	zoom, err := strconv.Atoi(fields["zoom"])
	if err != nil {
		return nil, fmt.Errorf("stored zoom for %s: %w", userID, err)
	}
	if zoom < domain.MinZoom {
		zoom = domain.MinZoom
	}
	if zoom > domain.MaxZoom {
		zoom = domain.MaxZoom
	}

	return &domain.LocationState{
		Place: fields["place"],
		Lat:   lat,
		Lon:   lon,
		Zoom:  zoom,
	}, nil
}

// Put unconditionally overwrites the user's state. Last writer wins.
func (r *LocationRepo) Put(ctx context.Context, userID string, state domain.LocationState) error {
	if math.IsNaN(state.Lat) || math.IsInf(state.Lat, 0) ||
		math.IsNaN(state.Lon) || math.IsInf(state.Lon, 0) {
		return fmt.Errorf("refusing non-finite coordinate for %s", userID)
	}

	cl := r.c.client
	cmd := cl.B().Hset().Key(locationKey(userID)).
		FieldValue().
		FieldValue("lat", strconv.FormatFloat(state.Lat, 'f', -1, 64)).
		FieldValue("lon", strconv.FormatFloat(state.Lon, 'f', -1, 64)).
		FieldValue("zoom", strconv.Itoa(state.Zoom)).
		FieldValue("place", state.Place).
		Build()
	if err := cl.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("hset %s: %w", userID, err)
	}
	return nil
}
