package routing

import (
	"github.com/Oggm2/registroServicio/portal/session"
)

// Action is what the guard tells the shell to do with a route.
type Action int

const (
	// ActionLoading means the session is still being restored; show a
	// placeholder and re-evaluate once it settles.
	ActionLoading Action = iota
	ActionRender
	ActionRedirect
)

// Decision is the guard's verdict for a navigation attempt.
type Decision struct {
	Action Action
	// Target is the redirect destination when Action is ActionRedirect.
	Target string
	// ReplaceHistory asks the shell not to leave the attempted path in
	// the history stack.
	ReplaceHistory bool
}

// Evaluate guards a route against the current session:
// an unsettled session yields ActionLoading; an anonymous user is sent
// to the login page; an authenticated user lacking the required role is
// sent to their landing page; anything else renders.
func Evaluate(snap session.Snapshot, rd RouteDescriptor) Decision {
	if rd.Public() {
		return Decision{Action: ActionRender}
	}

	switch snap.State {
	case session.StateUnknown:
		return Decision{Action: ActionLoading}
	case session.StateAnonymous:
		return Decision{Action: ActionRedirect, Target: PathLogin, ReplaceHistory: true}
	}

	if snap.User == nil || !rd.Allows(snap.User.Rol) {
		return Decision{Action: ActionRedirect, Target: PathDashboard, ReplaceHistory: true}
	}
	return Decision{Action: ActionRender}
}

// EvaluatePath guards an arbitrary path. Unknown paths fall through to
// the role's landing page.
func EvaluatePath(snap session.Snapshot, path string) Decision {
	rd, ok := FindRoute(path)
	if !ok {
		return IndexRedirect(snap)
	}
	return Evaluate(snap, rd)
}

// IndexRedirect resolves the catch-all route: anonymous users go to the
// login page, authenticated users to their landing page.
func IndexRedirect(snap session.Snapshot) Decision {
	switch snap.State {
	case session.StateUnknown:
		return Decision{Action: ActionLoading}
	case session.StateAuthenticated:
		if snap.User != nil {
			return Decision{Action: ActionRedirect, Target: Landing(snap.User.Rol), ReplaceHistory: true}
		}
	}
	return Decision{Action: ActionRedirect, Target: PathLogin, ReplaceHistory: true}
}
