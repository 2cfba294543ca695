// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Principal is what the backend session stream reports for a signed-in account.
// It carries only what the auth provider knows, never profile data.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Identity is the signed-in principal merged with whatever profile data could be hydrated.
// Role stays empty until the profile (or seller record) has been fetched.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        Role   `json:"role,omitempty"`
}

// NewIdentity builds the minimal identity for a principal.
func NewIdentity(p *Principal) *Identity {
	return &Identity{
		UID:         p.UID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
	}
}

// HasRole reports whether the role has been hydrated.
func (i *Identity) HasRole() bool {
	return i.Role != ""
}

// WithProfile returns a copy of the identity with the profile fields merged in.
// Empty profile fields never erase what the principal already provided.
func (i *Identity) WithProfile(profile *UserProfile) *Identity {
	merged := *i
	if profile == nil {
		return &merged
	}
	if profile.DisplayName != "" {
		merged.DisplayName = profile.DisplayName
	}
	if profile.Role.IsValid() {
		merged.Role = profile.Role
	}

	return &merged
}

// UserProfile is the profile document stored under the user's uid.
type UserProfile struct {
	DisplayName string `json:"displayName,omitempty" firestore:"displayName" validate:"omitempty,max=120"`
	Role        Role   `json:"role,omitempty" firestore:"role" validate:"omitempty,oneof=customer seller admin"`
	PhoneNumber string `json:"phoneNumber,omitempty" firestore:"phoneNumber"`
	PhotoURL    string `json:"photoUrl,omitempty" firestore:"photoURL"`
}
