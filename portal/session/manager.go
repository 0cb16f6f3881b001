package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/Oggm2/registroServicio/core"
	"github.com/Oggm2/registroServicio/core/user"
)

// API is the authentication surface the Manager talks to.
type API interface {
	Authenticate(ctx context.Context, username, password string) (token string, usr user.User, err error)
	Register(ctx context.Context, nu user.NewUser) (token string, usr user.User, err error)
}

// Manager owns the current Session. It restores it from the Store on
// creation and keeps the Store in sync with every change.
//
// All methods are safe for concurrent use.
type Manager struct {
	store  Store
	api    API
	logger core.Logger

	mutex sync.RWMutex
	state State
	sess  Session
}

func NewManager(store Store, api API, logger core.Logger) *Manager {
	mgr := &Manager{
		store:  store,
		api:    api,
		logger: logger,
		state:  StateUnknown,
	}
	mgr.restore()
	return mgr
}

// restore hydrates the session from the Store. The state is never left
// at StateUnknown afterwards.
func (mgr *Manager) restore() {
	sess := mgr.store.Load()

	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()
	if sess.IsZero() {
		mgr.state = StateAnonymous
		return
	}
	mgr.sess = sess
	mgr.state = StateAuthenticated
}

// Snapshot returns the current session state.
func (mgr *Manager) Snapshot() Snapshot {
	mgr.mutex.RLock()
	defer mgr.mutex.RUnlock()
	return Snapshot{
		State: mgr.state,
		Token: mgr.sess.Token,
		User:  mgr.sess.User,
	}
}

// Token returns the current access token, or "" for an anonymous session.
func (mgr *Manager) Token() string {
	mgr.mutex.RLock()
	defer mgr.mutex.RUnlock()
	return mgr.sess.Token
}

// Login exchanges credentials for a session. On success the session is
// persisted and becomes the current one.
func (mgr *Manager) Login(ctx context.Context, username, password string) (user.User, error) {
	token, usr, err := mgr.api.Authenticate(ctx, username, password)
	if err != nil {
		return user.User{}, err
	}
	mgr.install(Session{Token: token, User: &usr})
	return usr, nil
}

// Register creates a new account and signs it in right away.
func (mgr *Manager) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	token, usr, err := mgr.api.Register(ctx, nu)
	if err != nil {
		return user.User{}, err
	}
	mgr.install(Session{Token: token, User: &usr})
	return usr, nil
}

// Logout discards the current session.
func (mgr *Manager) Logout() {
	mgr.discard()
}

// Invalidate discards the current session after the server rejected its
// token. It is a no-op on an anonymous session.
func (mgr *Manager) Invalidate() {
	mgr.mutex.RLock()
	authed := mgr.state == StateAuthenticated
	mgr.mutex.RUnlock()
	if !authed {
		return
	}
	mgr.discard()
}

func (mgr *Manager) install(sess Session) {
	mgr.mutex.Lock()
	mgr.sess = sess
	mgr.state = StateAuthenticated
	mgr.mutex.Unlock()

	// the in-memory session stays valid even when persisting fails
	if err := mgr.store.Save(sess); err != nil {
		mgr.logger.Warn(fmt.Sprintf("persisting session: %v", err), err)
	}
}

func (mgr *Manager) discard() {
	mgr.mutex.Lock()
	mgr.sess = Session{}
	mgr.state = StateAnonymous
	mgr.mutex.Unlock()

	if err := mgr.store.Clear(); err != nil {
		mgr.logger.Warn(fmt.Sprintf("clearing session: %v", err), err)
	}
}
