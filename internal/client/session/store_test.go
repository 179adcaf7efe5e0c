package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory DurableStore with optional corruption.
type memStore struct {
	snap    *Snapshot
	corrupt bool
	cleared int
}

func (m *memStore) Load() (*Snapshot, error) {
	if m.corrupt || m.snap == nil {
		return nil, ErrNoSnapshot
	}
	copied := *m.snap
	return &copied, nil
}

func (m *memStore) Save(snap Snapshot) error {
	m.snap = &snap
	m.corrupt = false
	return nil
}

func (m *memStore) Clear() error {
	m.snap = nil
	m.corrupt = false
	m.cleared++
	return nil
}

var annSnap = Snapshot{
	ID: "u1", Username: "ann", Email: "ann@x.com",
	FirstName: "Ann", Role: "resident", Token: "tok",
}

func TestHydrate_CookieCopyWins(t *testing.T) {
	staff := annSnap
	staff.Role = "staff"
	cookie := &memStore{snap: &annSnap}
	local := &memStore{snap: &staff}

	store := NewStore(cookie, local, nil)
	store.Hydrate()

	require.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "resident", store.Role(), "cookie copy must take precedence")
}

func TestHydrate_FallsBackToLocalCopy(t *testing.T) {
	cookie := &memStore{corrupt: true}
	local := &memStore{snap: &annSnap}

	store := NewStore(cookie, local, nil)
	store.Hydrate()

	require.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "u1", store.Snapshot().ID)
}

func TestHydrate_BothCorrupt_ClearsBoth(t *testing.T) {
	cookie := &memStore{corrupt: true}
	local := &memStore{corrupt: true}

	store := NewStore(cookie, local, nil)
	store.Hydrate()

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.Snapshot())
	assert.Equal(t, 1, cookie.cleared, "corrupt cookie copy must be cleared defensively")
	assert.Equal(t, 1, local.cleared, "corrupt local copy must be cleared defensively")
}

func TestHydrate_Idempotent(t *testing.T) {
	cookie := &memStore{snap: &annSnap}
	store := NewStore(cookie, &memStore{}, nil)

	store.Hydrate()
	first := store.Snapshot()
	store.Hydrate()
	second := store.Snapshot()

	require.NotNil(t, first)
	assert.Equal(t, *first, *second)
}

func TestLogin_WritesAllCopiesInLockstep(t *testing.T) {
	cookie := &memStore{}
	local := &memStore{}
	store := NewStore(cookie, local, nil)
	store.Hydrate()

	require.NoError(t, store.Login(annSnap))

	assert.Equal(t, StateAuthenticated, store.State())
	require.NotNil(t, cookie.snap)
	require.NotNil(t, local.snap)
	assert.Equal(t, *cookie.snap, *local.snap)
	assert.Equal(t, annSnap, *store.Snapshot())
}

func TestUpdate_OverwritesEverywhere(t *testing.T) {
	cookie := &memStore{}
	local := &memStore{}
	store := NewStore(cookie, local, nil)
	require.NoError(t, store.Login(annSnap))

	revised := annSnap
	revised.FirstName = "Annie"
	require.NoError(t, store.Update(revised))

	assert.Equal(t, "Annie", store.Snapshot().FirstName)
	assert.Equal(t, "Annie", cookie.snap.FirstName)
	assert.Equal(t, "Annie", local.snap.FirstName)
}

func TestLogout_ClearsBeforeNavigating(t *testing.T) {
	cookie := &memStore{snap: &annSnap}
	local := &memStore{snap: &annSnap}

	var navigatedTo string
	var cookieAtNav, localAtNav *Snapshot
	store := NewStore(cookie, local, func(route string) {
		navigatedTo = route
		cookieAtNav = cookie.snap
		localAtNav = local.snap
	})
	store.Hydrate()

	store.Logout()

	assert.Equal(t, LandingRoute, navigatedTo)
	assert.Nil(t, cookieAtNav, "cookie copy must be cleared before navigation")
	assert.Nil(t, localAtNav, "local copy must be cleared before navigation")
	assert.Equal(t, StateAnonymous, store.State())

	// A rehydrate after logout must not resurrect the identity.
	store.Hydrate()
	assert.Equal(t, StateAnonymous, store.State())
}

func TestInvalidate_BehavesLikeLogout(t *testing.T) {
	cookie := &memStore{snap: &annSnap}
	local := &memStore{snap: &annSnap}

	var navigatedTo string
	store := NewStore(cookie, local, func(route string) { navigatedTo = route })
	store.Hydrate()

	store.Invalidate()

	assert.Equal(t, LandingRoute, navigatedTo)
	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, cookie.snap)
	assert.Nil(t, local.snap)
}
