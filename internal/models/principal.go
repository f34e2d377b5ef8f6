package models

// PrincipalKind tags the identity variant attached to a request.
type PrincipalKind string

const (
	// PrincipalLocal is a credentialed account identity.
	PrincipalLocal PrincipalKind = "local"
	// PrincipalExternal is a verified profile from an external identity
	// provider, with no guaranteed local account.
	PrincipalExternal PrincipalKind = "external"
	// PrincipalAdmin is the synthetic identity produced by the admin
	// request marker. It carries no account at all.
	PrincipalAdmin PrincipalKind = "admin"
)

// Principal is the identity attached to the current request. Local and
// external identities are deliberately not unified: only a local principal
// resolves to a User, and admin is a per-request capability rather than an
// account attribute.
type Principal struct {
	Kind        PrincipalKind `json:"kind"`
	UserID      uint          `json:"user_id,omitempty"`
	Provider    string        `json:"provider,omitempty"`
	ExternalID  string        `json:"external_id,omitempty"`
	DisplayName string        `json:"displayName,omitempty"`
	Email       string        `json:"email,omitempty"`
	IsAdmin     bool          `json:"isAdmin,omitempty"`
}

// LocalPrincipal builds the principal for a credentialed account.
func LocalPrincipal(user *User) Principal {
	display := user.Name
	if display == "" {
		display = user.Username
	}
	return Principal{
		Kind:        PrincipalLocal,
		UserID:      user.ID,
		DisplayName: display,
		Email:       user.Email,
	}
}

// AdminPrincipal builds the synthetic principal used by admin-gated routes.
func AdminPrincipal() Principal {
	return Principal{Kind: PrincipalAdmin, IsAdmin: true}
}
