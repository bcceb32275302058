package model

import "github.com/google/uuid"

type RoleId = string
type PermissionId = string

type Permission struct {
	Id   PermissionId `json:"id"`
	Name string       `json:"name"`
}

// Role holds the full Permission objects granted to it, not just their ids.
type Role struct {
	Id          RoleId       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Clone returns a deep copy so the receiver can't be mutated through the result.
func (r *Role) Clone() *Role {
	perms := make([]Permission, len(r.Permissions))
	copy(perms, r.Permissions)

	return &Role{
		Id:          r.Id,
		Name:        r.Name,
		Permissions: perms,
	}
}

func (r *Role) HasPermission(id PermissionId) bool {
	return ContainsPermission(r.Permissions, id)
}

func ContainsPermission(perms []Permission, id PermissionId) bool {
	for _, p := range perms {
		if p.Id == id {
			return true
		}
	}
	return false
}

func (r *Role) PermissionIds() []PermissionId {
	ids := make([]PermissionId, len(r.Permissions))
	for i, p := range r.Permissions {
		ids[i] = p.Id
	}
	return ids
}

func ClonePermissions(perms []*Permission) []*Permission {
	result := make([]*Permission, len(perms))
	for i, p := range perms {
		c := *p
		result[i] = &c
	}
	return result
}

func CloneRoles(roles []*Role) []*Role {
	result := make([]*Role, len(roles))
	for i, r := range roles {
		result[i] = r.Clone()
	}
	return result
}

// NewPermission creates a permission with a freshly generated id.
func NewPermission(name string) *Permission {
	return &Permission{Id: uuid.NewString(), Name: name}
}

// NewRole creates a role with a freshly generated id and no permissions.
func NewRole(name string) *Role {
	return &Role{Id: uuid.NewString(), Name: name, Permissions: make([]Permission, 0)}
}

// DemoRoles are the roles the dashboard is seeded with. Ids are generated
// on every call.
func DemoRoles() []*Role {
	return []*Role{NewRole("User"), NewRole("Administrator"), NewRole("Auditor")}
}

// DemoPermissions are the permissions the dashboard is seeded with. Ids are
// generated on every call.
func DemoPermissions() []*Permission {
	return []*Permission{NewPermission("Read Data"), NewPermission("Write Data"), NewPermission("Delete Data")}
}
