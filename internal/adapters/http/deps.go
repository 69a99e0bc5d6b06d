package http

import (
	natsadapter "github.com/samirrijal/textmaps/internal/adapters/nats"
	"github.com/samirrijal/textmaps/internal/adapters/valkey"
	"github.com/samirrijal/textmaps/internal/core/ports"
	"github.com/samirrijal/textmaps/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locations  *usecases.LocationService
	Directions *usecases.DirectionsService
	Delivery   *usecases.DeliveryService
	Images     ports.ImageRenderer

	// Infrastructure handles for readiness checks.
	Store *valkey.Client
	Jobs  *natsadapter.Publisher
}
