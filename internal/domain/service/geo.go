package service

import "tastelocal/internal/domain/entity"

// DistanceCalculator measures great-circle distances between two points.
type DistanceCalculator interface {
	DistanceKm(from, to entity.Coordinates) float64
}
