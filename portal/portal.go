// Package portal wires the session, the API client and the routing rules
// into the client-side shell of the registro de servicio portal.
package portal

import (
	"context"

	"github.com/Oggm2/registroServicio/core"
	"github.com/Oggm2/registroServicio/core/user"
	"github.com/Oggm2/registroServicio/portal/apiclient"
	"github.com/Oggm2/registroServicio/portal/routing"
	"github.com/Oggm2/registroServicio/portal/session"
)

// Navigate is the shell's navigation callback. replace asks the shell to
// overwrite the current history entry instead of pushing a new one.
type Navigate func(path string, replace bool)

// Portal is the composition root of the client shell.
type Portal struct {
	Session *session.Manager
	Client  *apiclient.Client

	nav Navigate
}

// New builds a Portal talking to the API at baseURL and keeping its
// session under stateDir. When the server rejects the session token, the
// session is dropped and the shell is sent to the login page.
func New(baseURL, stateDir string, logger core.Logger, nav Navigate) (*Portal, error) {
	client, err := apiclient.NewClient(baseURL)
	if err != nil {
		return nil, err
	}
	store, err := session.NewFileStore(stateDir)
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(store, client, logger)
	p := &Portal{
		Session: mgr,
		Client:  client,
		nav:     nav,
	}
	client.UseSession(mgr, func() {
		mgr.Invalidate()
		p.nav(routing.PathLogin, true)
	})
	return p, nil
}

// Login signs the user in and sends them to their landing page.
func (p *Portal) Login(ctx context.Context, username, password string) (user.User, error) {
	usr, err := p.Session.Login(ctx, username, password)
	if err != nil {
		return user.User{}, err
	}
	p.nav(routing.Landing(usr.Rol), true)
	return usr, nil
}

// Register creates an account, signs it in and sends it to its landing
// page.
func (p *Portal) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	usr, err := p.Session.Register(ctx, nu)
	if err != nil {
		return user.User{}, err
	}
	p.nav(routing.Landing(usr.Rol), true)
	return usr, nil
}

// Logout discards the session and sends the shell to the login page.
func (p *Portal) Logout() {
	p.Session.Logout()
	p.nav(routing.PathLogin, false)
}

// Guard evaluates whether the current session may visit path.
func (p *Portal) Guard(path string) routing.Decision {
	return routing.EvaluatePath(p.Session.Snapshot(), path)
}

// Navigation returns the sidebar for the signed-in user, or nil for an
// anonymous session.
func (p *Portal) Navigation() []routing.NavSection {
	snap := p.Session.Snapshot()
	if !snap.Authenticated() || snap.User == nil {
		return nil
	}
	return routing.Navigation(snap.User.Rol)
}
