package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samirrijal/textmaps/internal/core/domain"
	"github.com/samirrijal/textmaps/internal/pkg/metrics"
)

const defaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// Directions implements ports.RouteProvider against the Google Directions
// API.
type Directions struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewDirections creates a directions client. baseURL overrides the Google
// endpoint for tests; pass "" for the real one.
func NewDirections(baseURL, apiKey string) *Directions {
	if baseURL == "" {
		baseURL = defaultDirectionsURL
	}
	return &Directions{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Steps []struct {
				HTMLInstructions string `json:"html_instructions"`
				StartLocation    latLng `json:"start_location"`
				EndLocation      latLng `json:"end_location"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route fetches directions from an origin coordinate to a free-text
// destination. A response with no routes comes back as a route with zero
// legs; the step builder decides that means "no route found".
func (d *Directions) Route(ctx context.Context, origin domain.GeoPoint, destination string) (domain.Route, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamDuration.WithLabelValues("directions").Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	params.Set("destination", destination)
	if d.apiKey != "" {
		params.Set("key", d.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Route{}, err
	}
	resp, err := d.http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("directions").Inc()
		return domain.Route{}, &domain.UpstreamError{Backend: "directions", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamErrors.WithLabelValues("directions").Inc()
		return domain.Route{}, &domain.UpstreamError{
			Backend: "directions",
			Err:     fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.UpstreamErrors.WithLabelValues("directions").Inc()
		return domain.Route{}, &domain.UpstreamError{Backend: "directions", Err: err}
	}

	if decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		metrics.UpstreamErrors.WithLabelValues("directions").Inc()
		return domain.Route{}, &domain.UpstreamError{
			Backend: "directions",
			Err:     fmt.Errorf("status %s", decoded.Status),
		}
	}

	var route domain.Route
	if len(decoded.Routes) == 0 {
		return route, nil
	}
	for _, leg := range decoded.Routes[0].Legs {
		var out domain.Leg
		for _, s := range leg.Steps {
			out.Steps = append(out.Steps, domain.RouteStep{
				Start:        domain.GeoPoint{Lat: s.StartLocation.Lat, Lon: s.StartLocation.Lng},
				End:          domain.GeoPoint{Lat: s.EndLocation.Lat, Lon: s.EndLocation.Lng},
				Instructions: s.HTMLInstructions,
			})
		}
		route.Legs = append(route.Legs, out)
	}
	return route, nil
}
