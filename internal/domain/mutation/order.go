package mutation

import (
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// AddOrder records a new order first in the list and counts it in TotalOrders,
// as one transform.
type AddOrder struct {
	Order entity.Order
}

func (AddOrder) Name() string { return "addOrder" }
func (AddOrder) Fields() []string {
	return []string{entity.FieldOrders, entity.FieldTotalOrders}
}

func (c AddOrder) Apply(current *entity.Business, now time.Time) (*entity.Business, error) {
	order := c.Order
	order.ID = newID(PrefixOrder, order.ID)
	if order.Status == "" {
		order.Status = entity.OrderStatusPending
	}
	if !order.Status.IsValid() {
		return nil, domainerrors.Validation("unknown order status " + string(order.Status))
	}
	if len(order.Items) == 0 {
		return nil, domainerrors.Validation("an order needs at least one item")
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = now
	}
	order.Items = append([]string(nil), order.Items...)
	if indexOf(current.Orders, func(o entity.Order) bool { return o.ID == order.ID }) >= 0 || current.IsDeleted(entity.FieldOrders, order.ID) {
		return nil, duplicate("order", order.ID)
	}

	next := current.Copy()
	next.Orders = prepend(order, current.Orders)
	next.TotalOrders = current.TotalOrders + 1

	return next, nil
}

// UpdateOrderStatus sets the status of one order. Any valid status may follow
// any other; presenting sensible transitions is left to the caller.
type UpdateOrderStatus struct {
	OrderID string
	Status  entity.OrderStatus
}

func (UpdateOrderStatus) Name() string     { return "updateOrderStatus" }
func (UpdateOrderStatus) Fields() []string { return []string{entity.FieldOrders} }

func (c UpdateOrderStatus) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	if !c.Status.IsValid() {
		return nil, domainerrors.Validation("unknown order status " + string(c.Status))
	}
	i := indexOf(current.Orders, func(o entity.Order) bool { return o.ID == c.OrderID })
	if i < 0 {
		return nil, notFound("order", c.OrderID)
	}

	order := current.Orders[i]
	order.Status = c.Status

	next := current.Copy()
	next.Orders = replaceAt(current.Orders, i, order)

	return next, nil
}
