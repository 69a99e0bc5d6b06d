package geospatial

import "fmt"

// Axis selects which coordinate a pan offset applies to.
type Axis int

const (
	AxisLat Axis = iota
	AxisLon
)

// Pan offsets in decimal degrees, one table per axis. Each step out doubles
// the nudge so a pan always moves the view by roughly the same fraction of
// the visible map. Zoom levels outside 6-20 have no entry.
var (
	latPan = map[int]float64{
		6:  8.192,
		7:  4.096,
		8:  2.048,
		9:  1.024,
		10: 0.512,
		11: 0.256,
		12: 0.128,
		13: 0.064,
		14: 0.032,
		15: 0.016,
		16: 0.008,
		17: 0.004,
		18: 0.002,
		19: 0.001,
		20: 0.0005,
	}

	lonPan = map[int]float64{
		6:  11.468,
		7:  5.734,
		8:  2.867,
		9:  1.4336,
		10: 0.7168,
		11: 0.3584,
		12: 0.1792,
		13: 0.0896,
		14: 0.0448,
		15: 0.0224,
		16: 0.0112,
		17: 0.0056,
		18: 0.0028,
		19: 0.0014,
		20: 0.0007,
	}
)

// Pan table bounds.
const (
	MinPanZoom = 6
	MaxPanZoom = 20
)

// PanDistance returns the decimal-degree offset for one directional nudge at
// the given zoom level. Zoom levels outside the table are an error; callers
// clamp zoom into [MinPanZoom, MaxPanZoom] before looking up.
func PanDistance(zoom int, axis Axis) (float64, error) {
	table := latPan
	if axis == AxisLon {
		table = lonPan
	}
	d, ok := table[zoom]
	if !ok {
		return 0, fmt.Errorf("no pan distance for zoom level %d", zoom)
	}
	return d, nil
}

// ClampZoom forces a zoom level into the pan table's domain.
func ClampZoom(zoom int) int {
	if zoom < MinPanZoom {
		return MinPanZoom
	}
	if zoom > MaxPanZoom {
		return MaxPanZoom
	}
	return zoom
}
