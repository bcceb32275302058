package dashboard

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"role-dashboard/internal/repository/model"
	"role-dashboard/internal/service"
	"sync"
)

var emptyResponseError = errors.New("service returned no role")

// State is a snapshot of the controller. Slices are fresh copies but the
// Role and Permission values they point to are shared and must be treated as
// read-only: a role that was not touched by an update keeps its pointer.
type State struct {
	Roles       []*model.Role
	Permissions []*model.Permission
	IsLoading   bool
	IsUpdating  bool
	// Error is the display message of the most recent failure, empty if none.
	Error string

	// Version increases with every change. Subscribers never observe it going backwards.
	Version uint64
}

// LoadResult is what a load fetched. It is empty when the load failed.
type LoadResult struct {
	Roles       []*model.Role
	Permissions []*model.Permission
}

// Controller keeps the dashboard's copy of roles and permissions in sync with
// a RoleService. No method returns an error; failures are surfaced through
// State.Error.
//
// Concurrent updates are not serialised: each writes its result back by role
// id as it settles, so the last settling update to a role wins.
type Controller struct {
	logger *zap.SugaredLogger
	svc    service.RoleService

	mountOnce sync.Once

	mu          sync.Mutex
	roles       []*model.Role
	permissions []*model.Permission
	// in-flight operation counts; the initial load counts from construction
	loading  int
	updating int
	err      string
	version  uint64

	subMu       sync.Mutex
	subscribers map[int]*subscriber
	nextSubId   int
}

// subscriber queues states so fn sees them one at a time and in version
// order. A state published while fn runs, from any goroutine, is handed
// over to the goroutine already draining the queue.
type subscriber struct {
	fn func(State)

	mu       sync.Mutex
	pending  []State
	draining bool
	started  bool
	last     uint64
}

// New creates a controller in the loading state. Call Mount to run the initial load.
func New(logger *zap.SugaredLogger, svc service.RoleService) *Controller {
	return &Controller{
		logger:      logger,
		svc:         svc,
		roles:       make([]*model.Role, 0),
		permissions: make([]*model.Permission, 0),
		loading:     1,
		subscribers: make(map[int]*subscriber),
	}
}

// Mount performs the initial load. Only the first call does anything.
func (c *Controller) Mount(ctx context.Context) {
	c.mountOnce.Do(func() {
		c.load(ctx, false)
	})
}

// Refetch reloads roles and permissions. On failure the previous data is kept,
// State.Error is set and an empty result is returned.
func (c *Controller) Refetch(ctx context.Context) LoadResult {
	return c.load(ctx, true)
}

// UpdateRolePermissions replaces the permissions of a role. It returns the
// updated role, or nil if the update failed.
func (c *Controller) UpdateRolePermissions(ctx context.Context, roleId model.RoleId, permissions []model.Permission) *model.Role {
	c.mutate(func() {
		c.updating++
		c.err = ""
	})
	defer c.mutate(func() {
		c.updating--
	})

	updated, err := c.svc.AssignPermissions(ctx, roleId, permissions)
	if err == nil && updated == nil {
		err = emptyResponseError
	}
	if err != nil {
		c.logger.Errorw("failed to update role permissions", "roleId", roleId, "kind", service.KindOf(err), "error", err)
		c.mutate(func() {
			c.err = UserMessage(err)
		})
		return nil
	}

	stored := updated.Clone()
	c.mutate(func() {
		c.roles = replaceRole(c.roles, stored)
	})

	c.logger.Debugw("updated role permissions", "roleId", roleId, "permissions", len(stored.Permissions))
	return updated
}

// ClearError resets State.Error. It is a no-op when there is no error.
func (c *Controller) ClearError() {
	c.mu.Lock()
	if c.err == "" {
		c.mu.Unlock()
		return
	}
	c.err = ""
	c.version++
	state := c.snapshot()
	c.mu.Unlock()

	c.publish(state)
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe registers fn to receive every state change, starting with the
// current state. Deliveries to fn never overlap and never go back in
// version. fn runs on a goroutine that made a change and may call back into
// the controller; changes it causes are delivered after it returns.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	sub := &subscriber{fn: fn}

	c.subMu.Lock()
	id := c.nextSubId
	c.nextSubId++
	c.subscribers[id] = sub
	c.subMu.Unlock()

	sub.deliver(c.State())

	return func() {
		c.subMu.Lock()
		delete(c.subscribers, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) load(ctx context.Context, begin bool) LoadResult {
	c.mutate(func() {
		if begin {
			c.loading++
		}
		c.err = ""
	})
	defer c.mutate(func() {
		c.loading--
	})

	result, err := c.fetch(ctx)
	if err != nil {
		c.logger.Errorw("failed to fetch dashboard data", "kind", service.KindOf(err), "error", err)
		c.mutate(func() {
			c.err = UserMessage(err)
		})
		return LoadResult{Roles: make([]*model.Role, 0), Permissions: make([]*model.Permission, 0)}
	}

	c.mutate(func() {
		c.roles = model.CloneRoles(result.Roles)
		c.permissions = model.ClonePermissions(result.Permissions)
	})

	c.logger.Debugw("fetched dashboard data", "roles", len(result.Roles), "permissions", len(result.Permissions))
	return result
}

// fetch lists roles and permissions concurrently. Either both succeed or
// the error of the first failure is returned.
func (c *Controller) fetch(ctx context.Context) (LoadResult, error) {
	var roles []*model.Role
	var perms []*model.Permission

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.svc.ListRoles(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch roles: %w", err)
		}
		roles = r
		return nil
	})
	g.Go(func() error {
		p, err := c.svc.ListPermissions(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch permissions: %w", err)
		}
		perms = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}

	if roles == nil {
		roles = make([]*model.Role, 0)
	}
	if perms == nil {
		perms = make([]*model.Permission, 0)
	}
	return LoadResult{Roles: roles, Permissions: perms}, nil
}

// mutate applies fn under the state lock and publishes the result.
func (c *Controller) mutate(fn func()) {
	c.mu.Lock()
	fn()
	c.version++
	state := c.snapshot()
	c.mu.Unlock()

	c.publish(state)
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() State {
	roles := make([]*model.Role, len(c.roles))
	copy(roles, c.roles)
	perms := make([]*model.Permission, len(c.permissions))
	copy(perms, c.permissions)

	return State{
		Roles:       roles,
		Permissions: perms,
		IsLoading:   c.loading > 0,
		IsUpdating:  c.updating > 0,
		Error:       c.err,
		Version:     c.version,
	}
}

func (c *Controller) publish(state State) {
	c.subMu.Lock()
	subs := make([]*subscriber, 0, len(c.subscribers))
	for _, s := range c.subscribers {
		subs = append(subs, s)
	}
	c.subMu.Unlock()

	for _, s := range subs {
		s.deliver(state)
	}
}

// deliver drops states older than the last one queued for fn.
func (s *subscriber) deliver(state State) {
	s.mu.Lock()
	if s.started && state.Version <= s.last {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.last = state.Version
	s.pending = append(s.pending, state)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.fn(next)

		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

// replaceRole returns a copy of roles with the entry matching updated's id
// swapped out. All other entries keep their identity.
func replaceRole(roles []*model.Role, updated *model.Role) []*model.Role {
	next := make([]*model.Role, len(roles))
	for i, r := range roles {
		if r.Id == updated.Id {
			next[i] = updated
		} else {
			next[i] = r
		}
	}
	return next
}
