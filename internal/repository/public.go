package repository

import (
	"context"
	"errors"
	"role-dashboard/internal/repository/model"
)

var (
	RoleNotFoundError       = errors.New("role not found")
	PermissionNotFoundError = errors.New("permission not found")
	DuplicateIdError        = errors.New("duplicate id")
)

// Repository is the backing store of the simulated backend.
// Implementations must never hand out references to their internal state.
type Repository interface {
	GetAllRoles(ctx context.Context) ([]*model.Role, error)
	GetRole(ctx context.Context, roleId model.RoleId) (*model.Role, error)
	GetAllPermissions(ctx context.Context) ([]*model.Permission, error)

	// SetRolePermissions replaces the permission set of a role with the
	// permissions identified by permissionIds, resolved to the stored
	// Permission objects. Duplicate ids are collapsed, keeping the first.
	SetRolePermissions(ctx context.Context, roleId model.RoleId, permissionIds []model.PermissionId) (*model.Role, error)
}
