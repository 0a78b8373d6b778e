package models

// Role is the access tier of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// CanManageCatalog reports whether the role may create, update or delete pizzas.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin || r == RoleOwner
}

// CanCreateAdmins reports whether the role may register admin accounts.
func (r Role) CanCreateAdmins() bool {
	return r == RoleOwner
}
