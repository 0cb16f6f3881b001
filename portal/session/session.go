// Package session keeps track of the authenticated user across restarts.
package session

import (
	"github.com/Oggm2/registroServicio/core/user"
)

// State tells whether a session has been restored yet and, once it has,
// whether a user is signed in.
type State int

const (
	// StateUnknown means restoration from the Store has not completed yet.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an authenticated user's token and profile.
// The zero value is an anonymous session.
type Session struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (s Session) IsZero() bool {
	return s.Token == "" && s.User == nil
}

// Snapshot is a point-in-time view of the session state, safe to read
// after the Manager has moved on.
type Snapshot struct {
	State State
	Token string
	User  *user.User
}

func (s Snapshot) Authenticated() bool { return s.State == StateAuthenticated }
