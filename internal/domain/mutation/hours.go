package mutation

import (
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// UpdateBusinessHours replaces the weekly hours table. The table must hold one
// entry for each weekday, Monday to Sunday.
type UpdateBusinessHours struct {
	Hours []entity.BusinessHours
}

func (UpdateBusinessHours) Name() string     { return "updateBusinessHours" }
func (UpdateBusinessHours) Fields() []string { return []string{entity.FieldHours} }

func (c UpdateBusinessHours) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	if err := entity.ValidateWeek(c.Hours); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	next := current.Copy()
	next.Hours = append([]entity.BusinessHours(nil), c.Hours...)

	return next, nil
}
