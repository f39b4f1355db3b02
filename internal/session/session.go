// Package session holds the login state machine and the in-memory registry of
// live sessions. Sessions do not survive a process restart.
package session

import (
	"errors"
	"fmt"
	"time"
)

// State is the login state of a session.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged_out"
	case LoggedIn:
		return "logged_in"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrSessionNotFound   = errors.New("session not found")
)

// Session is the explicit per-user context handed to every handler.
type Session struct {
	ID         string
	UserID     string
	Role       string
	State      State
	LoggedInAt time.Time
	ExpiresAt  time.Time
}

// New returns a logged-out session with the given ID.
func New(id string) *Session {
	return &Session{ID: id, State: LoggedOut}
}

// Login moves LoggedOut -> LoggedIn.
func (s *Session) Login(userID, role string, at, expiresAt time.Time) error {
	if s.State != LoggedOut {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, s.State)
	}
	if userID == "" {
		return fmt.Errorf("%w: empty user", ErrInvalidTransition)
	}
	s.UserID = userID
	s.Role = role
	s.LoggedInAt = at
	s.ExpiresAt = expiresAt
	s.State = LoggedIn
	return nil
}

// Logout moves LoggedIn -> LoggedOut and clears all session-local state.
func (s *Session) Logout() error {
	if s.State != LoggedIn {
		return fmt.Errorf("%w: logout from %s", ErrInvalidTransition, s.State)
	}
	*s = Session{ID: s.ID, State: LoggedOut}
	return nil
}

// Active reports whether the session is logged in and not expired at now.
func (s *Session) Active(now time.Time) bool {
	return s.State == LoggedIn && (s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt))
}
