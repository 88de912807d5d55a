package mutation

import (
	"strings"
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// AddMenuItem appends an item to the menu.
type AddMenuItem struct {
	Item entity.MenuItem
}

func (AddMenuItem) Name() string     { return "addMenuItem" }
func (AddMenuItem) Fields() []string { return []string{entity.FieldMenu} }

func (c AddMenuItem) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	item := c.Item
	item.ID = newID(PrefixMenuItem, item.ID)
	if strings.TrimSpace(item.Name) == "" {
		return nil, domainerrors.Validation("menu item name is required")
	}
	if indexOf(current.Menu, func(m entity.MenuItem) bool { return m.ID == item.ID }) >= 0 || current.IsDeleted(entity.FieldMenu, item.ID) {
		return nil, duplicate("menu item", item.ID)
	}

	next := current.Copy()
	next.Menu = appendCopy(current.Menu, item)

	return next, nil
}

// MenuItemPatch lists the menu item fields an update may change. Nil fields are
// left as they are.
type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	Available   *bool
	Image       *string
}

// UpdateMenuItem changes fields of one menu item.
type UpdateMenuItem struct {
	ID    string
	Patch MenuItemPatch
}

func (UpdateMenuItem) Name() string     { return "updateMenuItem" }
func (UpdateMenuItem) Fields() []string { return []string{entity.FieldMenu} }

func (c UpdateMenuItem) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	i := indexOf(current.Menu, func(m entity.MenuItem) bool { return m.ID == c.ID })
	if i < 0 {
		return nil, notFound("menu item", c.ID)
	}

	item := current.Menu[i]
	p := c.Patch
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, domainerrors.Validation("menu item name is required")
		}
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
	if p.Image != nil {
		image := *p.Image
		item.Image = &image
	}

	next := current.Copy()
	next.Menu = replaceAt(current.Menu, i, item)

	return next, nil
}

// DeleteMenuItem removes one menu item.
type DeleteMenuItem struct {
	ID string
}

func (DeleteMenuItem) Name() string     { return "deleteMenuItem" }
func (DeleteMenuItem) Fields() []string { return []string{entity.FieldMenu, entity.FieldDeletedIDs} }

func (c DeleteMenuItem) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	i := indexOf(current.Menu, func(m entity.MenuItem) bool { return m.ID == c.ID })
	if i < 0 {
		return nil, notFound("menu item", c.ID)
	}

	next := current.Copy()
	next.Menu = removeAt(current.Menu, i)
	next.DeletedIDs = current.WithDeleted(entity.FieldMenu, c.ID)

	return next, nil
}
