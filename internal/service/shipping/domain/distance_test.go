package domain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	hanoi = Coordinate{Lat: 21.0285, Lng: 105.8542}
	hcmc  = Coordinate{Lat: 10.8231, Lng: 106.6297}
)

func TestDistanceKm_HanoiToHCMC(t *testing.T) {
	assert.InDelta(t, 1140, DistanceKm(hanoi, hcmc), 15)
}

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := randomCoordinate(rng)
		assert.Equal(t, 0.0, DistanceKm(a, a), "point %+v", a)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a, b := randomCoordinate(rng), randomCoordinate(rng)
		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	d := DistanceKm(Coordinate{Lat: 0, Lng: 0}, Coordinate{Lat: 0, Lng: 180})
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestDistanceBetween_UnknownIsNotZero(t *testing.T) {
	cases := []struct {
		name string
		a, b *Coordinate
	}{
		{"both nil", nil, nil},
		{"shop nil", nil, &hanoi},
		{"destination nil", &hanoi, nil},
		{"nan latitude", &Coordinate{Lat: math.NaN(), Lng: 105}, &hanoi},
		{"infinite longitude", &hanoi, &Coordinate{Lat: 21, Lng: math.Inf(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := DistanceBetween(tc.a, tc.b)
			assert.False(t, ok)
		})
	}

	km, ok := DistanceBetween(&hanoi, &hanoi)
	assert.True(t, ok)
	assert.Zero(t, km)
}

func randomCoordinate(rng *rand.Rand) Coordinate {
	return Coordinate{
		Lat: rng.Float64()*180 - 90,
		Lng: rng.Float64()*360 - 180,
	}
}
