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

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Geocoder implements ports.Geocoder against the Google Geocoding API.
type Geocoder struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewGeocoder creates a geocoding client. baseURL overrides the Google
// endpoint for tests; pass "" for the real one.
func NewGeocoder(baseURL, apiKey string) *Geocoder {
	if baseURL == "" {
		baseURL = defaultGeocodeURL
	}
	return &Geocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves free text to a named coordinate. No match is a user
// error (try a different query), anything else is upstream.
func (g *Geocoder) Geocode(ctx context.Context, query string) (string, domain.GeoPoint, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Set("address", query)
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}

	var decoded geocodeResponse
	if err := g.getJSON(ctx, g.baseURL+"?"+params.Encode(), &decoded); err != nil {
		metrics.UpstreamErrors.WithLabelValues("geocode").Inc()
		return "", domain.GeoPoint{}, &domain.UpstreamError{Backend: "geocode", Err: err}
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return "", domain.GeoPoint{}, &domain.UserInputError{
			Msg: fmt.Sprintf("I couldn't find %q. Try adding a city or zip.", query),
		}
	default:
		metrics.UpstreamErrors.WithLabelValues("geocode").Inc()
		return "", domain.GeoPoint{}, &domain.UpstreamError{
			Backend: "geocode",
			Err:     fmt.Errorf("status %s", decoded.Status),
		}
	}

	if len(decoded.Results) == 0 {
		return "", domain.GeoPoint{}, &domain.UserInputError{
			Msg: fmt.Sprintf("I couldn't find %q. Try adding a city or zip.", query),
		}
	}

	best := decoded.Results[0]
	return best.FormattedAddress, domain.GeoPoint{
		Lat: best.Geometry.Location.Lat,
		Lon: best.Geometry.Location.Lng,
	}, nil
}

func (g *Geocoder) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
