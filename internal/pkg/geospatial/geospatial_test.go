package geospatial_test

import (
	"math"
	"testing"

	"github.com/samirrijal/textmaps/internal/pkg/geospatial"
)

func TestHeading_CardinalDirections(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   int
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geospatial.Heading(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if got != tt.want {
				t.Errorf("Heading(%v,%v -> %v,%v) = %d, want %d",
					tt.lat1, tt.lon1, tt.lat2, tt.lon2, got, tt.want)
			}
		})
	}
}

func TestHeading_IdenticalPoints(t *testing.T) {
	// Semantically meaningless but must not blow up.
	got := geospatial.Heading(43.263, -2.935, 43.263, -2.935)
	if got < 0 || got >= 360 {
		t.Errorf("Heading(p, p) = %d, want value in [0,360)", got)
	}
}

func TestHeading_AlwaysInRange(t *testing.T) {
	points := []struct{ lat, lon float64 }{
		{43.263, -2.935},
		{-33.86, 151.21},
		{51.5, -0.12},
		{35.68, 139.69},
		{0, 179.9},
		{0, -179.9},
	}
	for _, a := range points {
		for _, b := range points {
			got := geospatial.Heading(a.lat, a.lon, b.lat, b.lon)
			if got < 0 || got >= 360 {
				t.Errorf("Heading(%v,%v -> %v,%v) = %d, out of range",
					a.lat, a.lon, b.lat, b.lon, got)
			}
		}
	}
}

func TestPanDistance_MonotonicAsZoomDecreases(t *testing.T) {
	for _, axis := range []geospatial.Axis{geospatial.AxisLat, geospatial.AxisLon} {
		prev := math.Inf(1)
		for zoom := geospatial.MinPanZoom; zoom <= geospatial.MaxPanZoom; zoom++ {
			d, err := geospatial.PanDistance(zoom, axis)
			if err != nil {
				t.Fatalf("PanDistance(%d, %v): %v", zoom, axis, err)
			}
			if d <= 0 {
				t.Errorf("PanDistance(%d, %v) = %v, want positive", zoom, axis, d)
			}
			if d > prev {
				t.Errorf("PanDistance(%d, %v) = %v exceeds coarser zoom %v", zoom, axis, d, prev)
			}
			prev = d
		}
	}
}

func TestPanDistance_OutOfRange(t *testing.T) {
	for _, zoom := range []int{0, 5, 21, -1} {
		if _, err := geospatial.PanDistance(zoom, geospatial.AxisLat); err == nil {
			t.Errorf("PanDistance(%d) succeeded, want error", zoom)
		}
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct{ in, want int }{
		{2, 6},
		{6, 6},
		{13, 13},
		{20, 20},
		{25, 20},
	}
	for _, tt := range tests {
		if got := geospatial.ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Bilbao Abando to Moyua, roughly 460m.
	d := geospatial.Haversine(43.2609, -2.9273, 43.2631, -2.9322)
	if d < 350 || d > 600 {
		t.Errorf("Haversine = %v m, want ~460m", d)
	}
}
