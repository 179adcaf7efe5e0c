package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGate() *Gate {
	return NewGate([]RoleRoute{
		{Prefix: "/admin", Role: "admin"},
		{Prefix: "/staff", Role: "staff"},
		{Prefix: "/resident", Role: "resident"},
	})
}

func TestDecide_UnscopedRoutesAlwaysAllowed(t *testing.T) {
	gate := testGate()
	for _, state := range []State{StateUninitialized, StateHydrating, StateAuthenticated, StateAnonymous} {
		assert.Equal(t, Allow, gate.Decide(state, "", "/about"), "state %s", state)
		assert.Equal(t, Allow, gate.Decide(state, "", "/"), "state %s", state)
	}
}

func TestDecide_DefersUntilHydrated(t *testing.T) {
	gate := testGate()
	assert.Equal(t, Defer, gate.Decide(StateUninitialized, "", "/admin/rooms"))
	assert.Equal(t, Defer, gate.Decide(StateHydrating, "", "/admin/rooms"))
	// Even with a role already visible in memory, an unsettled store defers.
	assert.Equal(t, Defer, gate.Decide(StateHydrating, "admin", "/admin/rooms"))
}

func TestDecide_RoleScoping(t *testing.T) {
	gate := testGate()

	assert.Equal(t, Allow, gate.Decide(StateAuthenticated, "admin", "/admin/rooms"))
	assert.Equal(t, Allow, gate.Decide(StateAuthenticated, "staff", "/staff/dashboard"))
	assert.Equal(t, Redirect, gate.Decide(StateAuthenticated, "resident", "/admin/rooms"))
	assert.Equal(t, Redirect, gate.Decide(StateAuthenticated, "staff", "/resident/profile"))
}

func TestDecide_AnonymousRedirects(t *testing.T) {
	gate := testGate()
	assert.Equal(t, Redirect, gate.Decide(StateAnonymous, "", "/admin/rooms"))
	assert.Equal(t, Redirect, gate.Decide(StateAnonymous, "", "/resident/profile"))
}
