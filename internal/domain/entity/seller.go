package entity

import "time"

// Seller is the professional record a seller-app identity must have to hold a session.
type Seller struct {
	ID            string    `json:"id" firestore:"-"`
	Name          string    `json:"name" firestore:"name" validate:"required"`
	Email         string    `json:"email" firestore:"email" validate:"required,email"`
	PharmacyName  string    `json:"pharmacyName" firestore:"pharmacyName" validate:"required"`
	Address       string    `json:"address" firestore:"address" validate:"required"`
	LicenseNumber string    `json:"licenseNumber" firestore:"licenseNumber" validate:"required"`
	LicenseURL    string    `json:"licenseUrl" firestore:"licenseUrl"`
	Approved      bool      `json:"approved" firestore:"approved"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}

// SetID tags the seller with its document id.
func (s *Seller) SetID(id string) {
	s.ID = id
}

// Identity returns the session identity a valid seller record grants.
func (s *Seller) Identity(p *Principal) *Identity {
	identity := NewIdentity(p)
	if s.Name != "" {
		identity.DisplayName = s.Name
	}
	identity.Role = RoleSeller

	return identity
}
