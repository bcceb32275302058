package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"role-dashboard/internal/repository/model"
	"sync"
)

type memoryRepository struct {
	mu sync.RWMutex

	// roles keeps insertion order, roleIndex maps id -> position in roles
	roles       []*model.Role
	roleIndex   map[model.RoleId]int
	permissions []*model.Permission
	permIndex   map[model.PermissionId]int
}

// NewMemoryRepository creates a repository seeded with copies of the given data.
// Seed ids must be unique and every role permission must exist in perms.
// Seed entries without an id are given a generated one.
func NewMemoryRepository(roles []*model.Role, perms []*model.Permission) (Repository, error) {
	m := &memoryRepository{
		roles:       make([]*model.Role, 0, len(roles)),
		roleIndex:   make(map[model.RoleId]int, len(roles)),
		permissions: make([]*model.Permission, 0, len(perms)),
		permIndex:   make(map[model.PermissionId]int, len(perms)),
	}

	for _, p := range perms {
		c := *p
		if c.Id == "" {
			c.Id = uuid.NewString()
		}
		if _, ok := m.permIndex[c.Id]; ok {
			return nil, fmt.Errorf("permission %s: %w", c.Id, DuplicateIdError)
		}
		m.permIndex[c.Id] = len(m.permissions)
		m.permissions = append(m.permissions, &c)
	}

	for _, r := range roles {
		id := r.Id
		if id == "" {
			id = uuid.NewString()
		}
		if _, ok := m.roleIndex[id]; ok {
			return nil, fmt.Errorf("role %s: %w", id, DuplicateIdError)
		}
		resolved, err := m.resolve(r.PermissionIds())
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", id, err)
		}
		m.roleIndex[id] = len(m.roles)
		m.roles = append(m.roles, &model.Role{Id: id, Name: r.Name, Permissions: resolved})
	}

	return m, nil
}

// NewDemoRepository creates a repository holding the demo roles and permissions.
func NewDemoRepository() Repository {
	repo, err := NewMemoryRepository(model.DemoRoles(), model.DemoPermissions())
	if err != nil {
		panic(err)
	}
	return repo
}

func (m *memoryRepository) GetAllRoles(_ context.Context) ([]*model.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return model.CloneRoles(m.roles), nil
}

func (m *memoryRepository) GetRole(_ context.Context, roleId model.RoleId) (*model.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.roleIndex[roleId]
	if !ok {
		return nil, RoleNotFoundError
	}
	return m.roles[i].Clone(), nil
}

func (m *memoryRepository) GetAllPermissions(_ context.Context) ([]*model.Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return model.ClonePermissions(m.permissions), nil
}

func (m *memoryRepository) SetRolePermissions(_ context.Context, roleId model.RoleId, permissionIds []model.PermissionId) (*model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.roleIndex[roleId]
	if !ok {
		return nil, RoleNotFoundError
	}

	resolved, err := m.resolve(permissionIds)
	if err != nil {
		return nil, err
	}

	// Replace rather than mutate so earlier clones stay valid
	updated := &model.Role{Id: m.roles[i].Id, Name: m.roles[i].Name, Permissions: resolved}
	m.roles[i] = updated

	return updated.Clone(), nil
}

// resolve must be called with mu held.
func (m *memoryRepository) resolve(ids []model.PermissionId) ([]model.Permission, error) {
	resolved := make([]model.Permission, 0, len(ids))
	seen := make(map[model.PermissionId]struct{}, len(ids))

	for _, id := range ids {
		i, ok := m.permIndex[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", PermissionNotFoundError, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, *m.permissions[i])
	}

	return resolved, nil
}
