package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid order status. Any status may move to
// any other status; there is no transition graph.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Contact is the buyer's contact information, embedded verbatim into an
// order at placement time. It is not a standalone entity.
type Contact struct {
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Address   string `json:"address" validate:"required,min=5"`
	City      string `json:"city" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
}

// OrderItem is an immutable snapshot of one purchased product,
// taken at order time. Later catalog price changes never touch it.
type OrderItem struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     int64   `gorm:"index" json:"-"`
	Position    int     `json:"-"`
	ProductID   string  `gorm:"size:24" json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Order is the persisted result of a successful placement. Items and
// TotalPrice are fixed at creation; Status is the only field admin
// operations may change, and UpdatedAt tracks that change.
type Order struct {
	ID         int64       `json:"orderId,string"`
	Contact    Contact     `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"products"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `gorm:"size:16;index" json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// StatusStat is one row of the per-status aggregation.
type StatusStat struct {
	Status  OrderStatus `json:"status"`
	Count   int64       `json:"count"`
	Revenue float64     `json:"revenue"`
}

// OrderStats is the aggregate view over all orders, computed at
// request time.
type OrderStats struct {
	TotalOrders  int64        `json:"totalOrders"`
	TotalRevenue float64      `json:"totalRevenue"`
	ByStatus     []StatusStat `json:"byStatus"`
}
