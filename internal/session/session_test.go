package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTransitions(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	s := New("sid")
	assert.Equal(t, LoggedOut, s.State)

	require.ErrorIs(t, s.Logout(), ErrInvalidTransition)

	require.NoError(t, s.Login("u1", "annotator", at, at.Add(time.Hour)))
	assert.Equal(t, LoggedIn, s.State)
	assert.Equal(t, "u1", s.UserID)
	assert.True(t, s.Active(at.Add(time.Minute)))
	assert.False(t, s.Active(at.Add(2*time.Hour)))

	require.ErrorIs(t, s.Login("u2", "annotator", at, at), ErrInvalidTransition)
	assert.Equal(t, "u1", s.UserID, "failed transition leaves state untouched")

	require.NoError(t, s.Logout())
	assert.Equal(t, Session{ID: "sid", State: LoggedOut}, *s)
	assert.False(t, s.Active(at))
}

func TestSessionLoginRequiresUser(t *testing.T) {
	s := New("sid")
	require.ErrorIs(t, s.Login("", "annotator", time.Now(), time.Time{}), ErrInvalidTransition)
	assert.Equal(t, LoggedOut, s.State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "logged_out", LoggedOut.String())
	assert.Equal(t, "logged_in", LoggedIn.String())
	assert.Equal(t, "state(7)", State(7).String())
}

func TestManagerLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	m := NewManager()
	m.now = func() time.Time { return now }

	s := m.Begin()
	assert.NotEmpty(t, s.ID)
	require.ErrorIs(t, m.Register(s), ErrInvalidTransition, "logged-out sessions are not registered")

	require.NoError(t, s.Login("u1", "annotator", now, now.Add(time.Hour)))
	require.NoError(t, m.Register(s))
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, "u1", got.UserID)

	got.UserID = "mutated"
	again, _ := m.Get(s.ID)
	assert.Equal(t, "u1", again.UserID, "Get returns a copy")

	ended, err := m.End(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", ended.UserID)
	assert.Equal(t, 0, m.Len())

	_, ok = m.Get(s.ID)
	assert.False(t, ok)
	_, err = m.End(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerDropsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	m := NewManager()
	m.now = func() time.Time { return now }

	s := m.Begin()
	require.NoError(t, s.Login("u1", "annotator", now, now.Add(time.Minute)))
	require.NoError(t, m.Register(s))

	now = now.Add(2 * time.Minute)
	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestManagerSweepsUnreadExpiredSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	m := NewManager()
	m.now = func() time.Time { return now }

	register := func(userID string, ttl time.Duration) *Session {
		s := m.Begin()
		require.NoError(t, s.Login(userID, "annotator", now, now.Add(ttl)))
		require.NoError(t, m.Register(s))
		return s
	}

	abandoned := register("u1", time.Minute)
	register("u2", time.Hour)
	require.Equal(t, 2, m.Len())

	// The abandoned session is never read again; the next login sweeps it.
	now = now.Add(2 * time.Minute)
	register("u3", time.Hour)
	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(abandoned.ID)
	assert.False(t, ok)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 2, m.Prune())
	assert.Equal(t, 0, m.Len())
}

func TestManagerBeginUniqueIDs(t *testing.T) {
	m := NewManager()
	assert.NotEqual(t, m.Begin().ID, m.Begin().ID)
}

func TestTokenIssuer(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	issuer := NewTokenIssuer("secret", time.Hour)
	assert.Equal(t, time.Hour, issuer.TTL())

	s := New("sid-1")
	_, err := issuer.Issue(s)
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, s.Login("u1", "annotator", now, now.Add(time.Hour)))
	token, err := issuer.Issue(s)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.ID)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "annotator", claims.Role)

	_, err = NewTokenIssuer("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour).UTC()
	issuer := NewTokenIssuer("secret", time.Hour)

	s := New("sid-2")
	require.NoError(t, s.Login("u1", "annotator", past, past.Add(time.Hour)))
	token, err := issuer.Issue(s)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
