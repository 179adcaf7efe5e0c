package session

import "strings"

// Decision is the outcome of a route authorization check.
type Decision int

const (
	// Defer: hydration has not settled; render a loading placeholder and
	// decide again later. Deciding before hydration completes is the bug
	// class this gate exists to avoid.
	Defer Decision = iota
	// Allow: render the requested route.
	Allow
	// Redirect: send the navigation to the landing route.
	Redirect
)

// RoleRoute declares a route prefix reachable only by one role.
type RoleRoute struct {
	Prefix string
	Role   string
}

// Gate decides route access from the store's state and the declared
// role-scoped prefixes. It is a pure function of its inputs.
type Gate struct {
	routes []RoleRoute
}

func NewGate(routes []RoleRoute) *Gate {
	return &Gate{routes: routes}
}

// Decide evaluates a navigation to path given the store's current state and
// active role. Routes outside every declared prefix are always allowed.
func (g *Gate) Decide(state State, role, path string) Decision {
	route, scoped := g.match(path)
	if !scoped {
		return Allow
	}

	switch state {
	case StateUninitialized, StateHydrating:
		return Defer
	case StateAuthenticated:
		if role == route.Role {
			return Allow
		}
		return Redirect
	default:
		return Redirect
	}
}

func (g *Gate) match(path string) (RoleRoute, bool) {
	for _, r := range g.routes {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return RoleRoute{}, false
}
