package service

import "errors"

var (
	RoleNotFoundError       = errors.New("role not found")
	InvalidPermissionsError = errors.New("invalid permissions")
	// TransientError is the injected failure of the simulated backend.
	// Retrying the same call may succeed.
	TransientError = errors.New("random error")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindRoleNotFound
	KindInvalidPermissions
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindRoleNotFound:
		return "ROLE_NOT_FOUND"
	case KindInvalidPermissions:
		return "INVALID_PERMISSIONS"
	case KindTransient:
		return "TRANSIENT"
	default:
		return "UNKNOWN"
	}
}

// KindOf classifies err. Errors that do not wrap one of the service
// sentinels, including context cancellation, are KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, RoleNotFoundError):
		return KindRoleNotFound
	case errors.Is(err, InvalidPermissionsError):
		return KindInvalidPermissions
	case errors.Is(err, TransientError):
		return KindTransient
	default:
		return KindUnknown
	}
}
