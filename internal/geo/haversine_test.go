package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.Zero(t, Distance(31.5204, 74.3587, 31.5204, 74.3587))
}

func TestDistanceKnownCities(t *testing.T) {
	// Lahore to Karachi, roughly 1025 km
	d := Distance(31.5204, 74.3587, 24.8607, 67.0011)
	assert.InDelta(t, 1025, d, 25)
}

func TestDistanceSymmetric(t *testing.T) {
	d1 := Distance(33.6844, 73.0479, 31.5204, 74.3587)
	d2 := Distance(31.5204, 74.3587, 33.6844, 73.0479)
	assert.InDelta(t, d1, d2, 1e-9)
}
