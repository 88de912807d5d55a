package mutation

import (
	"strings"
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// UpdateProfile rewrites the public details of the business as submitted by the
// onboarding form. Name, phone and location are required.
type UpdateProfile struct {
	BusinessName string
	Phone        string
	Location     string
	Description  string
	Cuisine      string
	Coordinates  *entity.Coordinates
}

func (UpdateProfile) Name() string { return "updateProfile" }
func (UpdateProfile) Fields() []string {
	return []string{
		entity.FieldName, entity.FieldPhone, entity.FieldLocation,
		entity.FieldDescription, entity.FieldCuisine, entity.FieldCoordinates,
	}
}

func (c UpdateProfile) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	if strings.TrimSpace(c.BusinessName) == "" || strings.TrimSpace(c.Phone) == "" || strings.TrimSpace(c.Location) == "" {
		return nil, domainerrors.Validation("name, phone and location are required")
	}
	if coords := c.Coordinates; coords != nil && (coords.Lat < -90 || coords.Lat > 90 || coords.Lng < -180 || coords.Lng > 180) {
		return nil, domainerrors.Validation("coordinates out of range")
	}

	next := current.Copy()
	next.Name = strings.TrimSpace(c.BusinessName)
	next.Phone = strings.TrimSpace(c.Phone)
	next.Location = strings.TrimSpace(c.Location)
	next.Description = c.Description
	next.Cuisine = strings.TrimSpace(c.Cuisine)
	if c.Coordinates != nil {
		coords := *c.Coordinates
		next.Coordinates = &coords
	}

	return next, nil
}
