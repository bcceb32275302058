package service

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"math/rand"
	"role-dashboard/internal/repository"
	"role-dashboard/internal/repository/model"
	"sync"
	"time"
)

// Policy controls the simulated network behaviour of the stand-in backend.
type Policy struct {
	// FailureRate is the chance, in [0, 1], that a call fails with TransientError.
	FailureRate float64
	// FailReads applies FailureRate to ListRoles and ListPermissions as well.
	// Writes are always subject to it.
	FailReads bool

	MinLatency time.Duration
	MaxLatency time.Duration

	// Seed for the random source. Zero seeds from the current time.
	Seed int64
}

func DefaultPolicy() Policy {
	return Policy{
		FailureRate: 0.25,
		FailReads:   false,
		MinLatency:  200 * time.Millisecond,
		MaxLatency:  1000 * time.Millisecond,
	}
}

type roleService struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
	policy Policy

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRoleService creates the simulated backend over repo. Every call waits a
// random delay in [MinLatency, MaxLatency) and may then fail per the policy,
// before any validation takes place.
func NewRoleService(logger *zap.SugaredLogger, repo repository.Repository, policy Policy) RoleService {
	seed := policy.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &roleService{
		logger: logger,
		repo:   repo,
		policy: policy,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *roleService) ListRoles(ctx context.Context) ([]*model.Role, error) {
	if err := s.simulate(ctx, s.policy.FailReads); err != nil {
		s.logger.Errorw("error fetching roles", "error", err)
		return nil, err
	}

	roles, err := s.repo.GetAllRoles(ctx)
	if err != nil {
		s.logger.Errorw("error fetching roles", "error", err)
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}

	return roles, nil
}

func (s *roleService) ListPermissions(ctx context.Context) ([]*model.Permission, error) {
	if err := s.simulate(ctx, s.policy.FailReads); err != nil {
		s.logger.Errorw("error fetching permissions", "error", err)
		return nil, err
	}

	perms, err := s.repo.GetAllPermissions(ctx)
	if err != nil {
		s.logger.Errorw("error fetching permissions", "error", err)
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}

	return perms, nil
}

func (s *roleService) AssignPermissions(ctx context.Context, roleId model.RoleId, permissions []model.Permission) (*model.Role, error) {
	if err := s.simulate(ctx, true); err != nil {
		s.logger.Errorw("error setting permissions for role", "roleId", roleId, "error", err)
		return nil, err
	}

	// The role is looked up first so an unknown role wins over invalid permissions
	current, err := s.repo.GetRole(ctx, roleId)
	if err != nil {
		err = assignError(roleId, err)
		s.logger.Errorw("error setting permissions for role", "roleId", roleId, "error", err)
		return nil, err
	}

	ids := make([]model.PermissionId, len(permissions))
	for i, p := range permissions {
		ids[i] = p.Id
	}

	role, err := s.repo.SetRolePermissions(ctx, roleId, ids)
	if err != nil {
		err = assignError(roleId, err)
		s.logger.Errorw("error setting permissions for role", "roleId", roleId, "role", current.Name, "error", err)
		return nil, err
	}

	s.logger.Debugw("set permissions for role", "roleId", roleId, "role", current.Name,
		"previous", current.PermissionIds(), "permissions", role.PermissionIds())
	return role, nil
}

// assignError maps a repository error to the service's error kinds.
func assignError(roleId model.RoleId, err error) error {
	switch {
	case errors.Is(err, repository.RoleNotFoundError):
		return fmt.Errorf("%w: %s", RoleNotFoundError, roleId)
	case errors.Is(err, repository.PermissionNotFoundError):
		return fmt.Errorf("%w: %w", InvalidPermissionsError, err)
	default:
		return fmt.Errorf("failed to set role permissions: %w", err)
	}
}

// simulate blocks for the simulated network delay and then rolls for an
// injected failure when canFail is set.
func (s *roleService) simulate(ctx context.Context, canFail bool) error {
	if delay := s.latency(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if canFail && s.roll() {
		return TransientError
	}
	return nil
}

func (s *roleService) latency() time.Duration {
	spread := s.policy.MaxLatency - s.policy.MinLatency
	if spread <= 0 {
		return s.policy.MinLatency
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.policy.MinLatency + time.Duration(s.rng.Int63n(int64(spread)))
}

func (s *roleService) roll() bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < s.policy.FailureRate
}
