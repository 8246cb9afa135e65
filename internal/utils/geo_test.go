package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

func TestCalculateDistance(t *testing.T) {
	tests := []struct {
		name      string
		point1    GeoPoint
		point2    GeoPoint
		expected  float64
		tolerance float64
	}{
		{
			name: "Same point",
			point1: GeoPoint{
				Latitude:  -6.175392,
				Longitude: 106.827153,
			},
			point2: GeoPoint{
				Latitude:  -6.175392,
				Longitude: 106.827153,
			},
			expected:  0.0,
			tolerance: 0.001,
		},
		{
			name: "Jakarta to Bandung (approximately)",
			point1: GeoPoint{
				Latitude:  -6.175392, // Jakarta
				Longitude: 106.827153,
			},
			point2: GeoPoint{
				Latitude:  -6.914744, // Bandung
				Longitude: 107.609810,
			},
			expected:  120.0, // Approximately 120 km
			tolerance: 10.0,  // Allow 10km tolerance
		},
		{
			name: "Short distance within Jakarta",
			point1: GeoPoint{
				Latitude:  -6.175392,
				Longitude: 106.827153,
			},
			point2: GeoPoint{
				Latitude:  -6.185392,
				Longitude: 106.837153,
			},
			expected:  1.5, // Approximately 1.5 km
			tolerance: 0.5,
		},
		{
			name: "Cross equator",
			point1: GeoPoint{
				Latitude:  -1.0,
				Longitude: 100.0,
			},
			point2: GeoPoint{
				Latitude:  1.0,
				Longitude: 100.0,
			},
			expected:  222.4, // Approximately 222.4 km (2 degrees latitude)
			tolerance: 5.0,
		},
		{
			name: "Antipodal points (maximum distance)",
			point1: GeoPoint{
				Latitude:  0.0,
				Longitude: 0.0,
			},
			point2: GeoPoint{
				Latitude:  0.0,
				Longitude: 180.0,
			},
			expected:  20015.0, // Half of Earth's circumference
			tolerance: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateDistance(tt.point1, tt.point2)

			// Check that result is non-negative
			assert.GreaterOrEqual(t, result, 0.0, "Distance should be non-negative")

			// Check that result is within expected tolerance
			assert.InDelta(t, tt.expected, result, tt.tolerance,
				"Distance should be within tolerance of expected value")
		})
	}
}

func TestCalculateDistance_EdgeCases(t *testing.T) {
	t.Run("North and South Poles", func(t *testing.T) {
		northPole := GeoPoint{Latitude: 90.0, Longitude: 0.0}
		southPole := GeoPoint{Latitude: -90.0, Longitude: 0.0}

		distance := CalculateDistance(northPole, southPole)

		// Distance between poles should be approximately half Earth's circumference
		expected := math.Pi * 6371.0 // π * Earth's radius
		assert.InDelta(t, expected, distance, 10.0, "Distance between poles should be approximately π * R")
	})

	t.Run("Very small distance", func(t *testing.T) {
		point1 := GeoPoint{Latitude: 0.0, Longitude: 0.0}
		point2 := GeoPoint{Latitude: 0.0001, Longitude: 0.0001}

		distance := CalculateDistance(point1, point2)

		assert.Greater(t, distance, 0.0, "Distance should be positive")
		assert.Less(t, distance, 0.1, "Distance should be very small")
	})
}

func TestDistanceMeters(t *testing.T) {
	t.Run("Matches kilometer distance", func(t *testing.T) {
		a := models.Fix{Latitude: -6.175392, Longitude: 106.827153}
		b := models.Fix{Latitude: -6.185392, Longitude: 106.837153}

		km := CalculateDistance(
			GeoPoint{Latitude: a.Latitude, Longitude: a.Longitude},
			GeoPoint{Latitude: b.Latitude, Longitude: b.Longitude},
		)
		meters := DistanceMeters(a, b)

		assert.InDelta(t, km*1000.0, meters, 0.001)
	})

	t.Run("Ten meter displacement", func(t *testing.T) {
		// Roughly 10m north of the first fix (1 degree latitude ~ 111.2 km)
		a := models.Fix{Latitude: -6.175392, Longitude: 106.827153}
		b := models.Fix{Latitude: -6.175392 + 0.00009, Longitude: 106.827153}

		meters := DistanceMeters(a, b)

		assert.InDelta(t, 10.0, meters, 1.0)
	})
}

func TestEncodeLocation(t *testing.T) {
	tests := []struct {
		name      string
		fix       models.Fix
		precision uint
		expected  string
	}{
		{
			name:      "Jakarta with default precision",
			fix:       models.Fix{Latitude: -6.175392, Longitude: 106.827153},
			precision: DefaultGeohashPrecision,
			expected:  "qqguygv",
		},
		{
			name:      "Jakarta with low precision",
			fix:       models.Fix{Latitude: -6.175392, Longitude: 106.827153},
			precision: 5,
			expected:  "qqguy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EncodeLocation(tt.fix, tt.precision)

			assert.Equal(t, tt.expected, result)
			assert.Len(t, result, int(tt.precision))
		})
	}
}

func TestDecodeGeohash(t *testing.T) {
	t.Run("Round trip stays inside the cell", func(t *testing.T) {
		fix := models.Fix{Latitude: -6.175392, Longitude: 106.827153}
		hash := EncodeLocation(fix, DefaultGeohashPrecision)

		lat, lng := DecodeGeohash(hash)

		// Precision 7 cells are about 150m wide, so the decoded center
		// must land within a small fraction of a degree.
		assert.InDelta(t, fix.Latitude, lat, 0.01)
		assert.InDelta(t, fix.Longitude, lng, 0.01)
	})
}

func TestGetNeighbors(t *testing.T) {
	t.Run("Returns eight neighbors", func(t *testing.T) {
		hash := EncodeLocation(models.Fix{Latitude: -6.175392, Longitude: 106.827153}, DefaultGeohashPrecision)

		neighbors := GetNeighbors(hash)

		assert.Len(t, neighbors, 8)
		for _, n := range neighbors {
			assert.Len(t, n, len(hash))
			assert.NotEqual(t, hash, n)
		}
	})
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		expected  bool
	}{
		{
			name:      "Valid Jakarta coordinates",
			latitude:  -6.175392,
			longitude: 106.827153,
			expected:  true,
		},
		{
			name:      "Valid boundary values",
			latitude:  90.0,
			longitude: 180.0,
			expected:  true,
		},
		{
			name:      "Latitude too large",
			latitude:  90.1,
			longitude: 0.0,
			expected:  false,
		},
		{
			name:      "Latitude too small",
			latitude:  -90.1,
			longitude: 0.0,
			expected:  false,
		},
		{
			name:      "Longitude too large",
			latitude:  0.0,
			longitude: 180.1,
			expected:  false,
		},
		{
			name:      "Longitude too small",
			latitude:  0.0,
			longitude: -180.1,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateCoordinates(tt.latitude, tt.longitude))
		})
	}
}

// Benchmark tests for performance
func BenchmarkCalculateDistance(b *testing.B) {
	point1 := GeoPoint{Latitude: -6.175392, Longitude: 106.827153}
	point2 := GeoPoint{Latitude: -6.914744, Longitude: 107.609810}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CalculateDistance(point1, point2)
	}
}
