package entity

// CartItem is one line of a customer's cart. ID is the backend document id.
type CartItem struct {
	ID         string  `json:"id" firestore:"-"`
	MedicineID string  `json:"medicineId" firestore:"medicineId" validate:"required"`
	Name       string  `json:"name" firestore:"name" validate:"required"`
	Brand      string  `json:"brand" firestore:"brand"`
	Price      float64 `json:"price" firestore:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" firestore:"quantity" validate:"gte=1"`
	ImageURL   string  `json:"imageUrl,omitempty" firestore:"imageUrl"`
}

// SetID tags the item with its document id.
func (c *CartItem) SetID(id string) {
	c.ID = id
}

// Subtotal returns price times quantity for the line.
func (c *CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}
