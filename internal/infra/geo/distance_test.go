package geo

import (
	"testing"

	"tastelocal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	calc := NewDistanceCalculator()

	soweto := entity.Coordinates{Lat: -26.2485, Lng: 27.8540}
	sandton := entity.Coordinates{Lat: -26.1076, Lng: 28.0567}

	assert.InDelta(t, 0, calc.DistanceKm(soweto, soweto), 1e-9)
	// roughly 25 km across Johannesburg
	assert.InDelta(t, 25.6, calc.DistanceKm(soweto, sandton), 1.0)
	assert.InDelta(t, calc.DistanceKm(soweto, sandton), calc.DistanceKm(sandton, soweto), 1e-9)
}
