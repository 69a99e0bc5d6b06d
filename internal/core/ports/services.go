package ports

import (
	"context"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

// Messenger sends an outbound message to a user. At least one of body and
// mediaURLs must be non-empty. A failure carries the provider's raw error
// payload as a *domain.DeliveryError.
type Messenger interface {
	Send(ctx context.Context, to, body string, mediaURLs []string) error
}

// Geocoder resolves free text into a named coordinate.
type Geocoder interface {
	// Geocode may fail with *domain.UserInputError when there is no match.
	Geocode(ctx context.Context, query string) (place string, point domain.GeoPoint, err error)
}

// RouteProvider fetches turn-by-turn directions.
type RouteProvider interface {
	// Route may return a route with zero legs; callers treat that as "no
	// route found".
	Route(ctx context.Context, origin domain.GeoPoint, destination string) (domain.Route, error)
}

// ImageRenderer builds map imagery URLs; rendering itself happens at the
// provider when the carrier fetches the media.
type ImageRenderer interface {
	MapURL(p domain.GeoPoint, zoom int) string
	StreetViewURL(p domain.GeoPoint, heading int) string
}

// JobQueue dispatches continuation-page delivery to the out-of-process
// worker. Enqueue is fire-and-forget; at-least-once dispatch is fine because
// TakePage on a drained queue is a no-op.
type JobQueue interface {
	EnqueueDelivery(ctx context.Context, userID string) error
}
