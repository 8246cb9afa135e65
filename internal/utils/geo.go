package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// GeoPoint represents a geographical point with latitude and longitude
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// DefaultGeohashPrecision gives cells of roughly 150m, fine enough for
// nearby-query prefiltering without leaking exact positions.
const DefaultGeohashPrecision uint = 7

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(point1, point2 GeoPoint) float64 {
	// Earth's radius in kilometers
	const earthRadius = 6371.0

	// Convert latitude and longitude from degrees to radians
	lat1 := point1.Latitude * math.Pi / 180.0
	lon1 := point1.Longitude * math.Pi / 180.0
	lat2 := point2.Latitude * math.Pi / 180.0
	lon2 := point2.Longitude * math.Pi / 180.0

	// Haversine formula
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	distance := earthRadius * c

	return distance
}

// DistanceMeters returns the great-circle distance between two fixes in meters
func DistanceMeters(a, b models.Fix) float64 {
	return CalculateDistance(
		GeoPoint{Latitude: a.Latitude, Longitude: a.Longitude},
		GeoPoint{Latitude: b.Latitude, Longitude: b.Longitude},
	) * 1000.0
}

// EncodeLocation converts a fix to a geohash string
func EncodeLocation(fix models.Fix, precision uint) string {
	return geohash.EncodeWithPrecision(fix.Latitude, fix.Longitude, precision)
}

// DecodeGeohash converts a geohash string to latitude and longitude
func DecodeGeohash(hash string) (latitude, longitude float64) {
	return geohash.Decode(hash)
}

// GetNeighbors returns the neighboring geohashes of a given geohash
func GetNeighbors(hash string) []string {
	return geohash.Neighbors(hash)
}

// ValidateCoordinates reports whether a lat/lng pair is on the globe
func ValidateCoordinates(latitude, longitude float64) bool {
	if latitude < -90 || latitude > 90 {
		return false
	}
	if longitude < -180 || longitude > 180 {
		return false
	}
	return true
}
