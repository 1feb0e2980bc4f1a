/*
types.go - Users, roles, capabilities, and dealership reference data

PURPOSE:
  Defines the people and places side of the data model:
  - User with role and a five-flag capability set
  - Source (acquisition channel with sub-categories)
  - Location (dealership site)

PERMISSION MODEL:
  Permissions are derived from the role at creation time (admin: all
  granted, buyer: none granted) and may be edited independently of the
  role afterwards. Role and permissions can therefore diverge: a buyer
  may be granted any subset of the five capabilities.

SEE ALSO:
  - appstate/controller.go: Derives permissions on AddUser and enforces
    them on vehicle/desklog mutations
*/
package directory

import "fmt"

// Role is the coarse account type a user is created with.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleBuyer Role = "buyer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleBuyer
}

// Permissions is the set of five independent capability grants.
// Each flag gates one class of mutating UI action.
type Permissions struct {
	EditVehicles   bool `json:"editVehicles"`
	DeleteVehicles bool `json:"deleteVehicles"`
	ViewDeals      bool `json:"viewDeals"`
	EditDeals      bool `json:"editDeals"`
	DeleteDeals    bool `json:"deleteDeals"`
}

// PermissionsForRole returns the capability set a freshly created user
// receives: everything for an admin, nothing for a buyer.
func PermissionsForRole(r Role) Permissions {
	admin := r == RoleAdmin
	return Permissions{
		EditVehicles:   admin,
		DeleteVehicles: admin,
		ViewDeals:      admin,
		EditDeals:      admin,
		DeleteDeals:    admin,
	}
}

// User is an account in the local user directory. There is no
// authentication; the current user is a locally selected identity.
type User struct {
	ID          string
	Name        string
	Email       string
	Role        Role
	Permissions Permissions
}

// Source is an acquisition channel: a named origin plus an ordered list
// of sub-category labels. Sources are add-only; there is no update or
// delete path for them.
type Source struct {
	ID            string
	Location      string
	SubCategories []string
}

// Location is a dealership site.
type Location struct {
	ID      string
	Name    string
	Address string
	City    string
	State   string
	Zip     string
}

// ParseRole converts a string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
