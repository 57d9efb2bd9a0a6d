// Package gate decides whether a storefront navigation may proceed or
// must be redirected, given an already-resolved session. Network lookup
// and its failure handling live in the resolver and the HTTP middleware,
// keeping the decision table itself pure.
package gate

import (
	"strings"

	"github.com/foodhubhq/storefront-gateway/pkg/types"
)

const (
	loginPath             = "/login"
	homePath              = "/"
	providerDashboardPath = "/provider/dashboard"
)

// DefaultPrefixes is the static set of path prefixes the gate applies to.
// The cart page is deliberately absent: right after login the session
// cookie may not have propagated yet, and bouncing a full cart to /login
// over a lookup race is worse than letting the page re-check client-side.
var DefaultPrefixes = []string{
	"/admin",
	"/provider",
	"/orders",
	"/checkout",
	"/profile",
}

// Decision is the gate's verdict for one navigation.
type Decision struct {
	redirect string
}

// Allow passes the request through unchanged.
func Allow() Decision {
	return Decision{}
}

// RedirectTo sends the caller to the given path instead.
func RedirectTo(target string) Decision {
	return Decision{redirect: target}
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.redirect == ""
}

// Target returns the redirect path for a non-allowed decision.
func (d Decision) Target() string {
	return d.redirect
}

// Gated reports whether the path falls under any of the prefixes.
func Gated(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if matchesPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide evaluates the role table for a gated path. It is stateless:
// the same session and path always produce the same decision.
func Decide(session *types.Session, path string) Decision {
	if session == nil {
		return RedirectTo(loginPath)
	}

	switch {
	case matchesPrefix(path, "/admin"):
		switch session.Role {
		case types.RoleAdmin:
			return Allow()
		case types.RoleProvider:
			return RedirectTo(providerDashboardPath)
		default:
			return RedirectTo(homePath)
		}
	case matchesPrefix(path, "/provider"):
		if session.Role == types.RoleCustomer {
			return RedirectTo(homePath)
		}
		return Allow()
	default:
		// /orders, /checkout, /profile: any authenticated role.
		return Allow()
	}
}

// matchesPrefix treats prefixes as path segments: "/admin" covers
// "/admin" and "/admin/...", never "/administration".
func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
