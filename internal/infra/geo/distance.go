// Package geo measures distances for location-aware discovery.
package geo

import (
	"tastelocal/internal/domain/entity"
	"tastelocal/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

type haversineCalculator struct{}

// NewDistanceCalculator returns a great-circle distance calculator.
func NewDistanceCalculator() service.DistanceCalculator {
	return haversineCalculator{}
}

// DistanceKm returns the haversine distance between two points in kilometers.
func (haversineCalculator) DistanceKm(from, to entity.Coordinates) float64 {
	return geo.DistanceHaversine(toPoint(from), toPoint(to)) / 1000
}

// orb points are (lng, lat)
func toPoint(c entity.Coordinates) orb.Point {
	return orb.Point{c.Lng, c.Lat}
}
