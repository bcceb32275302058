package model

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"testing"
)

type roleTest struct {
	input *Role
}

var roleTests = []roleTest{
	{
		input: &Role{
			Id:   "validTestOne",
			Name: "testName",
			Permissions: []Permission{
				{Id: "p1", Name: "Read"},
			},
		},
	},
	{
		input: &Role{
			Id:   "validTestTwo",
			Name: "empty",
			Permissions: []Permission{
				{Id: "p1", Name: "Read"},
				{Id: "p2", Name: "Write"},
			},
		},
	},
}

func TestRole_Clone(t *testing.T) {
	for _, test := range roleTests {
		t.Run(test.input.Id, func(t *testing.T) {
			cloned := test.input.Clone()
			assert.Equal(t, test.input, cloned)
			assert.NotSame(t, test.input, cloned)

			cloned.Permissions[0].Name = "changed"
			assert.NotEqual(t, "changed", test.input.Permissions[0].Name)
		})
	}
}

func TestRole_PermissionIds(t *testing.T) {
	role := roleTests[1].input
	assert.Equal(t, []PermissionId{"p1", "p2"}, role.PermissionIds())
	assert.True(t, role.HasPermission("p2"))
	assert.False(t, role.HasPermission("p3"))
}

func TestCloneRoles(t *testing.T) {
	roles := []*Role{roleTests[0].input.Clone()}
	cloned := CloneRoles(roles)

	assert.Equal(t, roles, cloned)
	cloned[0].Name = "changed"
	assert.Equal(t, "testName", roles[0].Name)
}

func TestClonePermissions(t *testing.T) {
	perms := []*Permission{{Id: "p1", Name: "Read"}}
	cloned := ClonePermissions(perms)

	assert.Equal(t, perms, cloned)
	cloned[0].Name = "changed"
	assert.Equal(t, "Read", perms[0].Name)
}

func TestNewRole(t *testing.T) {
	role := NewRole("Support")
	_, err := uuid.Parse(role.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Support", role.Name)
	assert.NotNil(t, role.Permissions)
	assert.Empty(t, role.Permissions)

	perm := NewPermission("Export Data")
	_, err = uuid.Parse(perm.Id)
	assert.NoError(t, err)
	assert.NotEqual(t, role.Id, perm.Id)
}

func TestDemoData(t *testing.T) {
	roles := DemoRoles()
	perms := DemoPermissions()
	assert.Len(t, roles, 3)
	assert.Len(t, perms, 3)

	ids := make(map[string]struct{})
	for _, r := range roles {
		_, err := uuid.Parse(r.Id)
		assert.NoError(t, err)
		assert.Empty(t, r.Permissions)
		ids[r.Id] = struct{}{}
	}
	for _, p := range perms {
		_, err := uuid.Parse(p.Id)
		assert.NoError(t, err)
		ids[p.Id] = struct{}{}
	}
	assert.Len(t, ids, 6)

	// Each call returns fresh data
	roles[0].Name = "changed"
	again := DemoRoles()
	assert.Equal(t, "User", again[0].Name)
	assert.NotEqual(t, roles[0].Id, again[0].Id)
}

func TestContainsPermission(t *testing.T) {
	perms := []Permission{{Id: "p1", Name: "Read"}, {Id: "p2", Name: "Write"}}
	assert.True(t, ContainsPermission(perms, "p2"))
	assert.False(t, ContainsPermission(perms, "p3"))
	assert.False(t, ContainsPermission(nil, "p1"))
}
