package google

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

const (
	staticMapURL  = "https://maps.googleapis.com/maps/api/staticmap"
	streetViewURL = "http://maps.googleapis.com/maps/api/streetview"

	imageSize = "640x640"
)

// Renderer implements ports.ImageRenderer: it only builds URLs, the carrier
// fetches the imagery when it delivers the MMS.
type Renderer struct {
	apiKey string
}

// NewRenderer creates an image URL builder.
func NewRenderer(apiKey string) *Renderer {
	return &Renderer{apiKey: apiKey}
}

// MapURL returns a static map centered on the point at the given zoom.
func (r *Renderer) MapURL(p domain.GeoPoint, zoom int) string {
	params := url.Values{}
	params.Set("center", fmt.Sprintf("%f,%f", p.Lat, p.Lon))
	params.Set("zoom", strconv.Itoa(zoom))
	params.Set("size", imageSize)
	params.Set("sensor", "false")
	if r.apiKey != "" {
		params.Set("key", r.apiKey)
	}
	return staticMapURL + "?" + params.Encode()
}

// StreetViewURL returns a street-view tile at the point, camera facing the
// given compass heading.
func (r *Renderer) StreetViewURL(p domain.GeoPoint, heading int) string {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", p.Lat, p.Lon))
	params.Set("heading", strconv.Itoa(heading))
	params.Set("size", imageSize)
	params.Set("sensor", "false")
	if r.apiKey != "" {
		params.Set("key", r.apiKey)
	}
	return streetViewURL + "?" + params.Encode()
}
