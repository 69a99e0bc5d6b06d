package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samirrijal/textmaps/internal/core/domain"
	"github.com/samirrijal/textmaps/internal/core/ports"
	"github.com/samirrijal/textmaps/internal/pkg/geospatial"
)

// Text of the synthetic final step appended after the last real maneuver.
const arrivalText = "You have arrived at your destination!"

// DirectionsService turns a destination request into a persisted queue of
// illustrated steps and kicks off delivery of the first page.
type DirectionsService struct {
	locations ports.LocationRepository
	routes    ports.RouteProvider
	queue     ports.StepQueueRepository
	images    ports.ImageRenderer
	delivery  *DeliveryService
}

// NewDirectionsService creates a new DirectionsService.
func NewDirectionsService(
	locations ports.LocationRepository,
	routes ports.RouteProvider,
	queue ports.StepQueueRepository,
	images ports.ImageRenderer,
	delivery *DeliveryService,
) *DirectionsService {
	return &DirectionsService{
		locations: locations,
		routes:    routes,
		queue:     queue,
		images:    images,
		delivery:  delivery,
	}
}

// Start routes from the user's stored location to the destination, replaces
// any pending steps with the new route, and delivers the first page. On any
// failure before Replace the prior queue is left untouched.
func (s *DirectionsService) Start(ctx context.Context, userID, destination string) error {
	if destination == "" {
		return &domain.UserInputError{Msg: `Where to? Send "to:" followed by a destination.`}
	}

	state, err := s.locations.Get(ctx, userID)
	if err != nil {
		return &domain.StorageError{Op: "get location", Err: err}
	}
	if state == nil {
		return domain.ErrNeedLocation()
	}

	route, err := s.routes.Route(ctx, state.Point(), destination)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			return err
		}
		return &domain.UpstreamError{Backend: "directions", Err: err}
	}

	steps, err := BuildSteps(route, s.images)
	if err != nil {
		return err
	}

	if err := s.queue.Replace(ctx, userID, steps); err != nil {
		return &domain.StorageError{Op: "replace steps", Err: err}
	}

	slog.Info("directions queued",
		"user", userID,
		"destination", destination,
		"steps", len(steps),
		"distance_m", int(routeDistance(route)))

	return s.delivery.DeliverNextPage(ctx, userID)
}

// BuildSteps converts a raw route into the ordered step sequence: one page
// entry per maneuver, numbered from 1, instruction tags stripped, street
// view facing the direction of travel, plus a final arrival step at the
// route's end using the last computed heading. A route with no steps at all
// is a "no route found" upstream condition, never an empty queue.
func BuildSteps(route domain.Route, images ports.ImageRenderer) ([]domain.DirectionStep, error) {
	var (
		steps       []domain.DirectionStep
		lastHeading int
		end         domain.GeoPoint
	)

	n := 0
	for _, leg := range route.Legs {
		for _, rs := range leg.Steps {
			n++
			h := geospatial.Heading(rs.Start.Lat, rs.Start.Lon, rs.End.Lat, rs.End.Lon)
			steps = append(steps, domain.DirectionStep{
				Text:     fmt.Sprintf("%d. %s", n, domain.StripTags(rs.Instructions)),
				ImageURL: images.StreetViewURL(rs.Start, h),
			})
			lastHeading = h
			end = rs.End
		}
	}

	if len(steps) == 0 {
		return nil, &domain.UpstreamError{Backend: "directions", Err: errors.New("no route found")}
	}

	steps = append(steps, domain.DirectionStep{
		Text:     arrivalText,
		ImageURL: images.StreetViewURL(end, lastHeading),
	})
	return steps, nil
}

func routeDistance(route domain.Route) float64 {
	var total float64
	for _, leg := range route.Legs {
		for _, rs := range leg.Steps {
			total += geospatial.Haversine(rs.Start.Lat, rs.Start.Lon, rs.End.Lat, rs.End.Lon)
		}
	}
	return total
}
