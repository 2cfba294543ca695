package entity

// Address is a shipping address in a customer's address book.
// At most one address per user is expected to have IsDefault set.
type Address struct {
	ID          string `json:"id" firestore:"-"`
	UserID      string `json:"userId" firestore:"userId" validate:"required"`
	FullName    string `json:"fullName" firestore:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" firestore:"phoneNumber" validate:"required"`
	Address     string `json:"address" firestore:"address" validate:"required"`
	City        string `json:"city" firestore:"city" validate:"required"`
	State       string `json:"state" firestore:"state" validate:"required"`
	Pincode     string `json:"pincode" firestore:"pincode" validate:"required,numeric,len=6"`
	IsDefault   bool   `json:"isDefault" firestore:"isDefault"`
}

// SetID tags the address with its document id.
func (a *Address) SetID(id string) {
	a.ID = id
}

// DefaultAddress returns the address flagged as default, or nil when none is.
// conflict is true when more than one address carries the flag; the first one wins.
func DefaultAddress(addresses []Address) (def *Address, conflict bool) {
	for i := range addresses {
		if !addresses[i].IsDefault {
			continue
		}
		if def != nil {
			return def, true
		}
		def = &addresses[i]
	}

	return def, false
}
