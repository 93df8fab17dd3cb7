package models

import "time"

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// orderStatusRank orders statuses along the only allowed progression:
// PENDING -> SHIPPED -> COMPLETED.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusShipped:   1,
	OrderStatusCompleted: 2,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Transitions only go forward; staying on the same status is a no-op and
// therefore allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	a, okA := orderStatusRank[s]
	b, okB := orderStatusRank[next]
	return okA && okB && b >= a
}

func (s OrderStatus) String() string { return string(s) }

// Order is a purchase record owned by a user. TotalPrice is denormalized:
// it always equals the sum of the referenced product prices as of the last
// product-set mutation.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	Products   []Product   `gorm:"many2many:order_products" json:"products,omitempty"`
	OrderDate  time.Time   `gorm:"index;autoCreateTime" json:"order_date"`
	Status     OrderStatus `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	TotalPrice float64     `gorm:"not null;check:total_price >= 0" json:"total_price"`
}

func (Order) TableName() string { return "orders" }
