package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"role-dashboard/internal/repository"
	"role-dashboard/internal/repository/model"
	"testing"
	"time"
)

var (
	readPermission  = model.Permission{Id: "p1", Name: "Read"}
	writePermission = model.Permission{Id: "p2", Name: "Write"}
)

func createRepo(t *testing.T) repository.Repository {
	repo, err := repository.NewMemoryRepository(
		[]*model.Role{
			{Id: "r1", Name: "User", Permissions: []model.Permission{}},
			{Id: "r2", Name: "Admin", Permissions: []model.Permission{readPermission}},
		},
		[]*model.Permission{&readPermission, &writePermission},
	)
	require.NoError(t, err)
	return repo
}

// instantPolicy has no latency and the given failure rate.
func instantPolicy(failureRate float64, failReads bool) Policy {
	return Policy{FailureRate: failureRate, FailReads: failReads, Seed: 42}
}

func newTestService(t *testing.T, policy Policy) (RoleService, repository.Repository) {
	repo := createRepo(t)
	return NewRoleService(zap.NewNop().Sugar(), repo, policy), repo
}

func TestRoleService_ListRoles(t *testing.T) {
	svc, _ := newTestService(t, instantPolicy(0, false))

	roles, err := svc.ListRoles(context.Background())
	assert.NoError(t, err)
	assert.Len(t, roles, 2)
	assert.Equal(t, "r1", roles[0].Id)
	assert.Equal(t, []model.Permission{readPermission}, roles[1].Permissions)

	// Callers can't reach service state through the result
	roles[1].Permissions[0].Name = "changed"
	roles[0].Name = "changed"

	again, err := svc.ListRoles(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "User", again[0].Name)
	assert.Equal(t, "Read", again[1].Permissions[0].Name)
}

func TestRoleService_ListPermissions(t *testing.T) {
	svc, _ := newTestService(t, instantPolicy(0, false))

	perms, err := svc.ListPermissions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []*model.Permission{&readPermission, &writePermission}, perms)

	perms[0].Name = "changed"
	assert.Equal(t, "Read", readPermission.Name)
}

func TestRoleService_ReadFailures(t *testing.T) {
	tests := map[string]struct {
		policy  Policy
		wantErr error
	}{
		"reads ignore failure rate by default": {
			policy: instantPolicy(1, false),
		},
		"reads fail when enabled": {
			policy:  instantPolicy(1, true),
			wantErr: TransientError,
		},
		"reads enabled but never failing": {
			policy: instantPolicy(0, true),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService(t, tt.policy)

			roles, err := svc.ListRoles(context.Background())
			perms, permErr := svc.ListPermissions(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, permErr, tt.wantErr)
				assert.Nil(t, roles)
				assert.Nil(t, perms)
				return
			}
			assert.NoError(t, err)
			assert.NoError(t, permErr)
			assert.Len(t, roles, 2)
			assert.Len(t, perms, 2)
		})
	}
}

var assignPermissionsTests = map[string]struct {
	policy Policy

	roleId model.RoleId
	perms  []model.Permission

	want     *model.Role
	wantKind Kind
}{
	"replaces not merges": {
		policy: instantPolicy(0, false),
		roleId: "r2",
		perms:  []model.Permission{writePermission},
		want:   &model.Role{Id: "r2", Name: "Admin", Permissions: []model.Permission{writePermission}},
	},
	"resolves canonical permission names": {
		policy: instantPolicy(0, false),
		roleId: "r1",
		perms:  []model.Permission{{Id: "p1", Name: "stale name"}},
		want:   &model.Role{Id: "r1", Name: "User", Permissions: []model.Permission{readPermission}},
	},
	"clears permissions": {
		policy: instantPolicy(0, false),
		roleId: "r2",
		perms:  []model.Permission{},
		want:   &model.Role{Id: "r2", Name: "Admin", Permissions: []model.Permission{}},
	},
	"role not found": {
		policy:   instantPolicy(0, false),
		roleId:   "missing-id",
		perms:    []model.Permission{},
		wantKind: KindRoleNotFound,
	},
	"role not found before invalid permissions": {
		policy:   instantPolicy(0, false),
		roleId:   "missing-id",
		perms:    []model.Permission{{Id: "bogus", Name: "x"}},
		wantKind: KindRoleNotFound,
	},
	"invalid permissions": {
		policy:   instantPolicy(0, false),
		roleId:   "r1",
		perms:    []model.Permission{{Id: "bogus", Name: "x"}},
		wantKind: KindInvalidPermissions,
	},
	"transient failure on valid input": {
		policy:   instantPolicy(1, false),
		roleId:   "r1",
		perms:    []model.Permission{readPermission},
		wantKind: KindTransient,
	},
	// The failure roll happens before validation is reached
	"transient failure on invalid input": {
		policy:   instantPolicy(1, false),
		roleId:   "missing-id",
		perms:    []model.Permission{{Id: "bogus"}},
		wantKind: KindTransient,
	},
}

func TestRoleService_AssignPermissions(t *testing.T) {
	for name, tt := range assignPermissionsTests {
		t.Run(name, func(t *testing.T) {
			svc, repo := newTestService(t, tt.policy)
			before, err := repo.GetAllRoles(context.Background())
			require.NoError(t, err)

			got, err := svc.AssignPermissions(context.Background(), tt.roleId, tt.perms)

			if tt.want == nil {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, KindOf(err))

				after, err := repo.GetAllRoles(context.Background())
				require.NoError(t, err)
				assert.Equal(t, before, after)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)

			stored, err := repo.GetRole(context.Background(), tt.roleId)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored)
		})
	}
}

func TestRoleService_AssignPermissionsFailureRate(t *testing.T) {
	svc, _ := newTestService(t, Policy{FailureRate: 0.25, Seed: 1234})

	const attempts = 2000
	failures := 0
	for i := 0; i < attempts; i++ {
		_, err := svc.AssignPermissions(context.Background(), "r1", []model.Permission{readPermission})
		if err != nil {
			require.ErrorIs(t, err, TransientError)
			failures++
		}
	}

	rate := float64(failures) / attempts
	assert.InDelta(t, 0.25, rate, 0.05, "failure rate %f", rate)
}

func TestRoleService_Latency(t *testing.T) {
	svc, _ := newTestService(t, Policy{MinLatency: 30 * time.Millisecond, MaxLatency: 60 * time.Millisecond, Seed: 7})

	start := time.Now()
	_, err := svc.ListRoles(context.Background())
	elapsed := time.Since(start)

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestRoleService_ContextCancelled(t *testing.T) {
	svc, _ := newTestService(t, Policy{MinLatency: time.Minute, MaxLatency: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	role, err := svc.AssignPermissions(ctx, "r1", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, role)
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestKindOf(t *testing.T) {
	tests := map[string]struct {
		err  error
		want Kind
	}{
		"nil":                  {err: nil, want: KindUnknown},
		"role not found":       {err: RoleNotFoundError, want: KindRoleNotFound},
		"wrapped not found":    {err: fmt.Errorf("%w: r1", RoleNotFoundError), want: KindRoleNotFound},
		"invalid permissions":  {err: fmt.Errorf("%w: p9", InvalidPermissionsError), want: KindInvalidPermissions},
		"transient":            {err: TransientError, want: KindTransient},
		"other":                {err: errors.New("boom"), want: KindUnknown},
		"deadline":             {err: context.DeadlineExceeded, want: KindUnknown},
		"repository not found": {err: repository.RoleNotFoundError, want: KindUnknown},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ROLE_NOT_FOUND", KindRoleNotFound.String())
	assert.Equal(t, "INVALID_PERMISSIONS", KindInvalidPermissions.String())
	assert.Equal(t, "TRANSIENT", KindTransient.String())
	assert.Equal(t, "UNKNOWN", KindUnknown.String())
}
