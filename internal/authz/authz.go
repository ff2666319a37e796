// Package authz decides, for every club-scoped request, whether the acting
// principal may touch the targeted tenant's data. It is a pure decision table
// over in-memory values: no I/O, no mutation, first matching rule wins, and
// anything not explicitly allowed is denied.
package authz

import "net/http"

// Kind discriminates the principal variants.
type Kind int

const (
	// Anonymous is an unauthenticated caller.
	Anonymous Kind = iota
	// UniversityAdmin is a privileged account with no club binding.
	UniversityAdmin
	// ClubAdmin is an account bound to exactly one club for its lifetime.
	ClubAdmin
	// Student is a read-mostly account acting under its own enrollment.
	Student
)

// String returns the principal kind name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case UniversityAdmin:
		return "university_admin"
	case ClubAdmin:
		return "club_admin"
	case Student:
		return "student"
	default:
		return "anonymous"
	}
}

// Principal is the authenticated (or anonymous) actor behind a request.
// ClubID is set only for ClubAdmin; Enrollment only for Student.
type Principal struct {
	Kind       Kind
	ID         string
	Username   string
	ClubID     string
	Name       string
	Email      string
	Enrollment string
}

// Anonymous principal for requests with no resolved session.
var Nobody = Principal{Kind: Anonymous}

// RouteClass is the authorization category an endpoint belongs to.
type RouteClass int

const (
	PublicRead RouteClass = iota
	UniversityAdminOnly
	ClubAdminOnly
	StudentWrite
)

// String returns the route class name used in logs and metrics.
func (r RouteClass) String() string {
	switch r {
	case UniversityAdminOnly:
		return "university_admin_only"
	case ClubAdminOnly:
		return "club_admin_only"
	case StudentWrite:
		return "student_write"
	default:
		return "public_read"
	}
}

// Target identifies the tenant and identity a request acts on. For updates
// ClubID comes from the stored row; for creates it comes from the request
// body, so cross-tenant creates are rejected before any row exists.
type Target struct {
	ClubID     string
	Enrollment string
}

// Reason is a machine-readable denial code.
type Reason string

const (
	ReasonUnauthenticated           Reason = "unauthenticated"
	ReasonClubAdminMustUseClubLogin Reason = "club_admin_must_use_club_login"
	ReasonUniversityAdminForbidden  Reason = "university_admin_forbidden"
	ReasonCrossTenantForbidden      Reason = "cross_tenant_forbidden"
	ReasonIdentityMismatch          Reason = "identity_mismatch"
	ReasonForbidden                 Reason = "forbidden"
)

// messages maps each denial reason to the human-readable message returned to
// clients. These strings are part of the API contract.
var messages = map[Reason]string{
	ReasonUnauthenticated:           "Authentication required",
	ReasonClubAdminMustUseClubLogin: "Club admins must use the club admin login",
	ReasonUniversityAdminForbidden:  "University admins cannot access club admin endpoints",
	ReasonCrossTenantForbidden:      "You do not have permission to access this club's data",
	ReasonIdentityMismatch:          "You can only act on your own enrollment",
	ReasonForbidden:                 "Forbidden",
}

// Decision is the gate's verdict for a single request.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

// Status returns the HTTP status code for this decision.
func (d Decision) Status() int {
	if d.Allowed {
		return http.StatusOK
	}
	if d.Reason == ReasonUnauthenticated {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// MetricReason returns the label recorded for this decision in metrics.
func (d Decision) MetricReason() string {
	if d.Allowed {
		return "allow"
	}
	return string(d.Reason)
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason, Message: messages[reason]}
}

// Check classifies a request and returns Allow or Deny with a specific
// reason. Rules are evaluated in order; the first match wins.
func Check(p Principal, route RouteClass, target Target) Decision {
	// Any route other than public-read requires an authenticated principal.
	if route != PublicRead && p.Kind == Anonymous {
		return deny(ReasonUnauthenticated)
	}

	switch route {
	case UniversityAdminOnly:
		if p.Kind == ClubAdmin {
			return deny(ReasonClubAdminMustUseClubLogin)
		}
		if p.Kind == UniversityAdmin {
			return allow()
		}

	case ClubAdminOnly:
		if p.Kind == UniversityAdmin {
			return deny(ReasonUniversityAdminForbidden)
		}
		if p.Kind == ClubAdmin {
			if p.ClubID != target.ClubID {
				return deny(ReasonCrossTenantForbidden)
			}
			return allow()
		}

	case PublicRead:
		return allow()

	case StudentWrite:
		if p.Kind == Student {
			if p.Enrollment != target.Enrollment {
				return deny(ReasonIdentityMismatch)
			}
			return allow()
		}
	}

	// Default-deny: a principal/route combination not explicitly allowed
	// above (e.g. a student on an admin route) is rejected.
	return deny(ReasonForbidden)
}
