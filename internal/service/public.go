package service

import (
	"context"
	"role-dashboard/internal/repository/model"
)

//go:generate mockgen -destination=mock_service.go -package=service role-dashboard/internal/service RoleService

// RoleService is the backend the dashboard synchronises against.
// Every call may fail; see KindOf for the failure taxonomy.
type RoleService interface {
	// ListRoles returns independent copies of all roles, or nothing at all.
	ListRoles(ctx context.Context) ([]*model.Role, error)
	// ListPermissions returns independent copies of all permissions, or nothing at all.
	ListPermissions(ctx context.Context) ([]*model.Permission, error)
	// AssignPermissions replaces the permission set of a role and returns the
	// authoritative updated role.
	AssignPermissions(ctx context.Context, roleId model.RoleId, permissions []model.Permission) (*model.Role, error)
}
