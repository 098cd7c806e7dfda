package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSymmetryAndIdentity(t *testing.T) {
	sf := Coordinate{Lat: 37.7749, Lon: -122.4194}
	la := Coordinate{Lat: 34.0522, Lon: -118.2437}

	assert.Equal(t, Distance(sf, la), Distance(la, sf))
	assert.Equal(t, 0.0, Distance(sf, sf))

	// SF to LA is roughly 560 km as the crow flies.
	d := Distance(sf, la)
	assert.Greater(t, d, 500.0)
	assert.Less(t, d, 620.0)
}

func TestDistanceOneDegreeLongitudeAtEquator(t *testing.T) {
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 0, Lon: 1}

	// One degree of longitude at the equator is about 111.2 km.
	assert.InDelta(t, 111.2, Distance(a, b), 0.2)
}

func TestTravelTime(t *testing.T) {
	// 40 km at base speed is exactly one hour.
	assert.Equal(t, 60, TravelTime(40, 1.0))
	// Faster vehicles halve the time.
	assert.Equal(t, 30, TravelTime(40, 2.0))
	// Truncates toward zero, never rounds up.
	assert.Equal(t, 1, TravelTime(1, 1.0))
	// Non-positive speed factors fall back to the base speed.
	assert.Equal(t, 60, TravelTime(40, 0))
}

func TestDirectionHint(t *testing.T) {
	from := Coordinate{Lat: 37.7749, Lon: -122.4194}

	tests := []struct {
		name string
		to   Coordinate
		want string
	}{
		{
			name: "due north",
			to:   Coordinate{Lat: 37.8749, Lon: -122.4194},
			want: "Head north for 6.2 miles",
		},
		{
			name: "north then east",
			to:   Coordinate{Lat: 37.8749, Lon: -122.4094},
			want: "Head north, then east for 6.2 miles",
		},
		{
			name: "west then south",
			to:   Coordinate{Lat: 37.7649, Lon: -122.5194},
			want: "Head west, then south for 6.2 miles",
		},
		{
			name: "zero movement resolves west",
			to:   from,
			want: "Head west for 6.2 miles",
		},
		{
			name: "equal deltas favor the east-west axis",
			to:   Coordinate{Lat: 37.8749, Lon: -122.3194},
			want: "Head east, then north for 6.2 miles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirectionHint(from, tt.to, 10)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, Coordinate{Lat: 90, Lon: -180}.Validate())
	assert.Error(t, Coordinate{Lat: 90.1, Lon: 0}.Validate())
	assert.Error(t, Coordinate{Lat: 0, Lon: 180.1}.Validate())
}
