package dashboard

import (
	"role-dashboard/internal/service"
	"strings"
)

const (
	RoleNotFoundMessage       = "The selected role could not be found. Please refresh and try again."
	InvalidPermissionsMessage = "One or more selected permissions are invalid. Please try again."
	TransientMessage          = "The operation failed due to a temporary error. Please try again."
	UnknownMessage            = "An error occurred. Please try again or contact support."

	unexpectedErrorMessage = "An unexpected error occurred"
)

var kindMessages = map[service.Kind]string{
	service.KindRoleNotFound:       RoleNotFoundMessage,
	service.KindInvalidPermissions: InvalidPermissionsMessage,
	service.KindTransient:          TransientMessage,
}

// substringMessages classifies plain string failures.
var substringMessages = []struct {
	substring string
	message   string
}{
	{"role not found", RoleNotFoundMessage},
	{"invalid permissions", InvalidPermissionsMessage},
	{service.TransientError.Error(), TransientMessage},
}

// RawMessage extracts the message of a failure value: the error text for
// errors, the value itself for strings, otherwise a generic fallback.
func RawMessage(v any) string {
	switch t := v.(type) {
	case error:
		return t.Error()
	case string:
		return t
	default:
		return unexpectedErrorMessage
	}
}

// UserMessage converts any failure value into the copy shown to the user.
// Errors are classified by kind only; substrings are matched for plain
// strings, which carry no kind.
func UserMessage(v any) string {
	switch t := v.(type) {
	case error:
		if msg, ok := kindMessages[service.KindOf(t)]; ok {
			return msg
		}
	case string:
		raw := strings.ToLower(RawMessage(t))
		for _, m := range substringMessages {
			if strings.Contains(raw, m.substring) {
				return m.message
			}
		}
	}

	return UnknownMessage
}
