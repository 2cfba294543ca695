package entity

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem is a line of a placed order, copied from the cart at checkout.
type OrderItem struct {
	MedicineID string  `json:"medicineId" firestore:"medicineId" validate:"required"`
	Name       string  `json:"name" firestore:"name" validate:"required"`
	Brand      string  `json:"brand" firestore:"brand"`
	Price      float64 `json:"price" firestore:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" firestore:"quantity" validate:"gte=1"`
}

// Order is immutable once created, except for status transitions made by the seller side.
type Order struct {
	ID              string      `json:"id" firestore:"-"`
	UserID          string      `json:"userId" firestore:"userId" validate:"required"`
	Items           []OrderItem `json:"items" firestore:"items" validate:"required,min=1,dive"`
	ShippingAddress Address     `json:"shippingAddress" firestore:"shippingAddress"`
	TotalAmount     float64     `json:"totalAmount" firestore:"totalAmount" validate:"gte=0"`
	Status          OrderStatus `json:"status" firestore:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	CreatedAt       time.Time   `json:"createdAt" firestore:"createdAt"`
}

// SetID tags the order with its document id.
func (o *Order) SetID(id string) {
	o.ID = id
}

// OrderFromCart builds a pending order from cart lines, summing the total from the lines.
func OrderFromCart(userID string, items []CartItem, shipping Address, now time.Time) *Order {
	order := &Order{
		UserID:          userID,
		Items:           make([]OrderItem, 0, len(items)),
		ShippingAddress: shipping,
		Status:          OrderStatusPending,
		CreatedAt:       now,
	}
	for _, item := range items {
		order.Items = append(order.Items, OrderItem{
			MedicineID: item.MedicineID,
			Name:       item.Name,
			Brand:      item.Brand,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
		order.TotalAmount += item.Subtotal()
	}

	return order
}
