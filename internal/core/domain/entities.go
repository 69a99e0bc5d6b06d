package domain

// LocationState is the persisted map view for one user, keyed by their phone
// number. Created on the first free-text location lookup, nudged around by
// navigation commands, overwritten by the next lookup. Never deleted.
type LocationState struct {
	Place string  `json:"place,omitempty"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Zoom  int     `json:"zoom"`
}

// Zoom bounds for a stored map view. A fresh location lookup starts at
// DefaultZoom, matching a city-scale static map.
const (
	MinZoom     = 2
	MaxZoom     = 20
	DefaultZoom = 10
)

// Point returns the state's coordinate.
func (s LocationState) Point() GeoPoint {
	return GeoPoint{Lat: s.Lat, Lon: s.Lon}
}

// DirectionStep is one instruction page: tag-stripped numbered text paired
// with a street-view tile oriented along the direction of travel. Steps are
// JSON-encoded into the pending-steps list.
type DirectionStep struct {
	Text     string `json:"text"`
	ImageURL string `json:"image"`
}

// Route is a directions backend response reduced to what step building needs.
type Route struct {
	Legs []Leg `json:"legs"`
}

// Leg is one segment of a route.
type Leg struct {
	Steps []RouteStep `json:"steps"`
}

// RouteStep is a single maneuver with its raw HTML instruction.
type RouteStep struct {
	Start        GeoPoint `json:"start_location"`
	End          GeoPoint `json:"end_location"`
	Instructions string   `json:"html_instructions"`
}
