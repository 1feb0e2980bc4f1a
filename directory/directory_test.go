package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsForRole_Admin(t *testing.T) {
	p := PermissionsForRole(RoleAdmin)
	assert.True(t, p.EditVehicles)
	assert.True(t, p.DeleteVehicles)
	assert.True(t, p.ViewDeals)
	assert.True(t, p.EditDeals)
	assert.True(t, p.DeleteDeals)
}

func TestPermissionsForRole_Buyer(t *testing.T) {
	// A buyer starts with nothing; grants come later from an admin.
	assert.Equal(t, Permissions{}, PermissionsForRole(RoleBuyer))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("buyer")
	assert.NoError(t, err)
	assert.Equal(t, RoleBuyer, r)

	_, err = ParseRole("manager")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}
