package app

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"io"
	"role-dashboard/internal/dashboard"
	"role-dashboard/internal/notifier"
	"role-dashboard/internal/repository/model"
	"strings"
	"sync"
	"text/tabwriter"
)

const updateSuccessMessage = "Permissions updated successfully"

// Presenter is the console dashboard. It only reads controller state and
// forwards user intent; selections are kept as per-role drafts until saved.
type Presenter struct {
	out    io.Writer
	logger *zap.SugaredLogger
	ctrl   *dashboard.Controller
	notif  notifier.Notifier

	mu     sync.Mutex
	drafts map[model.RoleId][]model.Permission
}

func NewPresenter(out io.Writer, logger *zap.SugaredLogger, ctrl *dashboard.Controller, notif notifier.Notifier) *Presenter {
	return &Presenter{
		out:    out,
		logger: logger,
		ctrl:   ctrl,
		notif:  notif,
		drafts: make(map[model.RoleId][]model.Permission),
	}
}

// Attach subscribes to the controller, moving every surfaced error into a
// notification.
func (p *Presenter) Attach() (detach func()) {
	return p.ctrl.Subscribe(func(s dashboard.State) {
		if s.Error == "" {
			return
		}
		p.notif.Notify(notifier.LevelError, s.Error)
		p.ctrl.ClearError()
	})
}

// Toggle flips a permission in the draft selection of a role. The controller
// is not involved until Save.
func (p *Presenter) Toggle(roleId model.RoleId, perm model.Permission) {
	p.mu.Lock()
	defer p.mu.Unlock()

	selected, ok := p.drafts[roleId]
	if !ok {
		selected = p.granted(roleId)
	}

	next := make([]model.Permission, 0, len(selected)+1)
	for _, s := range selected {
		if s.Id != perm.Id {
			next = append(next, s)
		}
	}
	if !model.ContainsPermission(selected, perm.Id) {
		next = append(next, perm)
	}

	p.drafts[roleId] = next
}

func (p *Presenter) IsDirty(roleId model.RoleId) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.drafts[roleId]
	return ok
}

// Cancel discards the draft selection of a role.
func (p *Presenter) Cancel(roleId model.RoleId) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.drafts, roleId)
}

// Save sends the draft selection of a role to the controller. It reports
// whether the update went through; a clean role is not saved.
func (p *Presenter) Save(ctx context.Context, roleId model.RoleId) bool {
	p.mu.Lock()
	selected, ok := p.drafts[roleId]
	p.mu.Unlock()
	if !ok {
		return false
	}

	if p.ctrl.State().IsUpdating {
		p.logger.Debugw("saving while another update is in flight", "roleId", roleId)
	}

	updated := p.ctrl.UpdateRolePermissions(ctx, roleId, selected)
	if updated == nil {
		return false
	}

	p.Cancel(roleId)
	p.notif.Notify(notifier.LevelSuccess, updateSuccessMessage)
	return true
}

// Assign selects exactly the named permissions for a role and saves them.
// Roles and permissions are looked up by name, then by id; names that match
// nothing are passed through so the backend can reject them.
func (p *Presenter) Assign(ctx context.Context, role string, permissions []string) bool {
	state := p.ctrl.State()
	roleId := lookupRole(state.Roles, role)

	p.Cancel(roleId)

	want := make(map[model.PermissionId]model.Permission, len(permissions))
	order := make([]model.PermissionId, 0, len(permissions))
	for _, name := range permissions {
		perm := lookupPermission(state.Permissions, name)
		if _, dup := want[perm.Id]; !dup {
			order = append(order, perm.Id)
		}
		want[perm.Id] = perm
	}

	for _, granted := range p.granted(roleId) {
		if _, keep := want[granted.Id]; !keep {
			p.Toggle(roleId, granted)
		}
	}
	for _, id := range order {
		if !p.isSelected(roleId, id) {
			p.Toggle(roleId, want[id])
		}
	}

	// An unchanged selection is still saved
	if !p.IsDirty(roleId) {
		p.mu.Lock()
		p.drafts[roleId] = p.granted(roleId)
		p.mu.Unlock()
	}

	p.logger.Infow("saving role permissions", "role", role, "roleId", roleId, "permissions", permissions)
	return p.Save(ctx, roleId)
}

func (p *Presenter) Refresh(ctx context.Context) {
	p.ctrl.Refetch(ctx)
}

func (p *Presenter) Render() error {
	state := p.ctrl.State()

	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Role Management Dashboard")

	if state.IsLoading {
		fmt.Fprintln(w, "Loading...")
		return w.Flush()
	}

	if len(state.Roles) == 0 {
		fmt.Fprintln(w, "No roles available")
	} else {
		fmt.Fprintln(w, "ROLE\tPERMISSIONS\tGRANTED")
		for _, role := range state.Roles {
			names := make([]string, len(role.Permissions))
			for i, perm := range role.Permissions {
				names[i] = perm.Name
			}
			granted := strings.Join(names, ", ")
			if granted == "" {
				granted = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", role.Name, len(role.Permissions), granted)
		}
	}

	available := make([]string, len(state.Permissions))
	for i, perm := range state.Permissions {
		available[i] = perm.Name
	}
	fmt.Fprintf(w, "Available permissions: %s\n", strings.Join(available, ", "))

	if state.IsUpdating {
		fmt.Fprintln(w, "Saving...")
	}
	if n, ok := p.notif.Active(); ok {
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Message)
	}

	return w.Flush()
}

// granted returns a copy of the permissions the controller holds for a role.
func (p *Presenter) granted(roleId model.RoleId) []model.Permission {
	for _, role := range p.ctrl.State().Roles {
		if role.Id == roleId {
			perms := make([]model.Permission, len(role.Permissions))
			copy(perms, role.Permissions)
			return perms
		}
	}
	return make([]model.Permission, 0)
}

func (p *Presenter) isSelected(roleId model.RoleId, permId model.PermissionId) bool {
	p.mu.Lock()
	selected, ok := p.drafts[roleId]
	p.mu.Unlock()
	if ok {
		return model.ContainsPermission(selected, permId)
	}

	for _, role := range p.ctrl.State().Roles {
		if role.Id == roleId {
			return role.HasPermission(permId)
		}
	}
	return false
}

func lookupRole(roles []*model.Role, ref string) model.RoleId {
	for _, r := range roles {
		if strings.EqualFold(r.Name, ref) {
			return r.Id
		}
	}
	return ref
}

func lookupPermission(perms []*model.Permission, ref string) model.Permission {
	for _, p := range perms {
		if strings.EqualFold(p.Name, ref) || p.Id == ref {
			return *p
		}
	}
	return model.Permission{Id: ref, Name: ref}
}
