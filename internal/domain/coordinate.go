package domain

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0
	kmPerMile     = 0.621371

	// Average road speed assumed when converting distance to travel time.
	// Per-vehicle speed factors scale this base.
	baseSpeedKmh = 40.0
)

// Immutable geographic coordinates (latitude, longitude).
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate checks that the coordinate lies within valid WGS84 bounds.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinate) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

// Distance returns the great-circle distance between two coordinates in
// kilometers using the haversine formula.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// TravelTime converts a distance to whole minutes of driving at the base
// speed scaled by the vehicle's speed factor.
func TravelTime(distanceKm float64, speedFactor float64) int {
	if speedFactor <= 0 {
		speedFactor = 1.0
	}
	return int(distanceKm / (baseSpeedKmh * speedFactor) * 60)
}

// DirectionHint produces an advisory compass phrase for the leg between two
// coordinates ("head north, then east for 2.3 miles"). It compares absolute
// latitude and longitude deltas and must never be treated as navigation-grade
// routing.
func DirectionHint(from, to Coordinate, distanceKm float64) string {
	latDiff := to.Lat - from.Lat
	lonDiff := to.Lon - from.Lon

	var primary string
	if math.Abs(latDiff) > math.Abs(lonDiff) {
		primary = "south"
		if latDiff > 0 {
			primary = "north"
		}
	} else {
		primary = "west"
		if lonDiff > 0 {
			primary = "east"
		}
	}

	var secondary string
	if math.Abs(latDiff) > 0.001 && math.Abs(lonDiff) > 0.001 {
		if math.Abs(latDiff) > math.Abs(lonDiff) {
			secondary = "west"
			if lonDiff > 0 {
				secondary = "east"
			}
		} else {
			secondary = "south"
			if latDiff > 0 {
				secondary = "north"
			}
		}
	}

	miles := distanceKm * kmPerMile
	if secondary != "" {
		return fmt.Sprintf("Head %s, then %s for %.1f miles", primary, secondary, miles)
	}
	return fmt.Sprintf("Head %s for %.1f miles", primary, miles)
}

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 { return km * kmPerMile }
