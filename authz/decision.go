package authz

import "github.com/techmaster-vietnam/kidsenglish/models"

// Reason explains why a request was denied
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonUnauthenticated      Reason = "UNAUTHENTICATED"
	ReasonAccountMisconfigured Reason = "ACCOUNT_MISCONFIGURED"
	ReasonAccountDisabled      Reason = "ACCOUNT_DISABLED"
	ReasonPermissionDenied     Reason = "PERMISSION_DENIED"
)

// Decision is the outcome of one authorization check
type Decision struct {
	Allowed bool
	Reason  Reason
	// Required chỉ được set khi Reason = ReasonPermissionDenied
	Required []models.Permission
	// Bypassed = true khi được cho qua nhờ super admin role
	Bypassed bool
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Message returns a human readable message for the decision
func (d Decision) Message() string {
	switch d.Reason {
	case ReasonNone:
		return "access granted"
	case ReasonUnauthenticated:
		return "authentication required"
	case ReasonAccountMisconfigured:
		return "account has no assigned role, contact an administrator"
	case ReasonAccountDisabled:
		return "account is disabled"
	case ReasonPermissionDenied:
		return "caller lacks required permission for this action"
	default:
		return "access denied"
	}
}
