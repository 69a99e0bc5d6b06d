package geospatial

import "math"

// Heading calculates the initial compass bearing in degrees from one point to
// the next, truncated to an integer in [0, 360). Street-level imagery uses it
// to face the camera along the direction of travel.
func Heading(lat1, lon1, lat2, lon2 float64) int {
	rLat1 := toRad(lat1)
	rLat2 := toRad(lat2)
	dLon := toRad(lon2 - lon1)

	y := math.Sin(dLon) * math.Cos(rLat2)
	x := math.Cos(rLat1)*math.Sin(rLat2) -
		math.Sin(rLat1)*math.Cos(rLat2)*math.Cos(dLon)

	deg := math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
	// nudge before truncating so exact cardinal bearings don't land a hair
	// under the integer (179.999... for due south)
	return int(math.Mod(deg+1e-9, 360))
}
