// Package gate decides what a route may show for a given session snapshot.
//
// The decision is made before any protected content renders: a session
// still resolving its stored token yields a placeholder, never the
// protected view and never a redirect.
package gate

import (
	"github.com/agriscan/platform/internal/dashboard/session"
)

// Decision is the gate's verdict for one route evaluation.
type Decision int

const (
	// Render means the route's own content may be shown.
	Render Decision = iota
	// Placeholder means the session is still bootstrapping: show a
	// neutral loading view, decide again later.
	Placeholder
	// RedirectLogin means the operator must authenticate first.
	RedirectLogin
	// RedirectUnauthorized means the operator is authenticated but the
	// route requires a role they do not hold.
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case Placeholder:
		return "placeholder"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return "unknown"
	}
}

// Requirement describes what a route demands of the session.
type Requirement struct {
	// RequiresAuth gates the route behind a live session.
	RequiresAuth bool
	// Roles, when non-empty, further restricts the route to the listed
	// roles. Only meaningful with RequiresAuth.
	Roles []string
}

// Public is the requirement for routes anyone may visit.
var Public = Requirement{}

// Authenticated is the requirement for routes behind login only.
var Authenticated = Requirement{RequiresAuth: true}

// RequireRoles builds a requirement for routes restricted to given roles.
func RequireRoles(roles ...string) Requirement {
	return Requirement{RequiresAuth: true, Roles: roles}
}

// Evaluate returns the verdict for one route against one session snapshot.
// It is pure: no side effects, no clock, no I/O.
func Evaluate(snap session.Snapshot, req Requirement) Decision {
	if !req.RequiresAuth {
		return Render
	}
	if snap.Loading() {
		return Placeholder
	}
	if !snap.IsAuthenticated() {
		return RedirectLogin
	}
	if len(req.Roles) > 0 && !hasRole(snap, req.Roles) {
		return RedirectUnauthorized
	}
	return Render
}

func hasRole(snap session.Snapshot, roles []string) bool {
	for _, r := range roles {
		if snap.User.Role == r {
			return true
		}
	}
	return false
}
