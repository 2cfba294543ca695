package entity

import "time"

// WishlistItem is a medicine saved by a customer for later.
type WishlistItem struct {
	ID         string    `json:"id" firestore:"-"`
	MedicineID string    `json:"medicineId" firestore:"medicineId" validate:"required"`
	Name       string    `json:"name" firestore:"name" validate:"required"`
	Brand      string    `json:"brand" firestore:"brand"`
	Price      float64   `json:"price" firestore:"price" validate:"gte=0"`
	ImageURL   string    `json:"imageUrl,omitempty" firestore:"imageUrl"`
	AddedAt    time.Time `json:"addedAt" firestore:"addedAt"`
}

// SetID tags the item with its document id.
func (w *WishlistItem) SetID(id string) {
	w.ID = id
}
