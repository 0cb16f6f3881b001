package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Oggm2/registroServicio/core/user"
	"github.com/Oggm2/registroServicio/portal/apiclient"
)

type stubAPI struct {
	token string
	usr   user.User
	err   error

	authCalls int
}

func (api *stubAPI) Authenticate(ctx context.Context, username, password string) (string, user.User, error) {
	api.authCalls++
	if api.err != nil {
		return "", user.User{}, api.err
	}
	return api.token, api.usr, nil
}

func (api *stubAPI) Register(ctx context.Context, nu user.NewUser) (string, user.User, error) {
	if api.err != nil {
		return "", user.User{}, api.err
	}
	return api.token, api.usr, nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func Test_Manager_restore(t *testing.T) {
	store := NewMemStore()
	mgr := NewManager(store, &stubAPI{}, nopLogger{})
	assert.Equal(t, StateAnonymous, mgr.Snapshot().State)

	sess := newSession()
	assert.NoError(t, store.Save(sess))

	mgr = NewManager(store, &stubAPI{}, nopLogger{})
	snap := mgr.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, sess.Token, snap.Token)
	assert.Equal(t, sess.User.ID, snap.User.ID)
	assert.Equal(t, sess.Token, mgr.Token())
}

func Test_Manager_login(t *testing.T) {
	api := &stubAPI{
		token: "tok123",
		usr:   user.User{ID: "u1", Username: "alumno1", Rol: user.RoleEstudiante},
	}
	store := NewMemStore()
	mgr := NewManager(store, api, nopLogger{})

	usr, err := mgr.Login(context.Background(), "alumno1", "s3cr3tpwd")
	assert.NoError(t, err)
	assert.Equal(t, "alumno1", usr.Username)
	assert.Equal(t, 1, api.authCalls)

	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated())
	assert.Equal(t, "tok123", snap.Token)

	// persisted for the next run
	assert.Equal(t, "tok123", store.Load().Token)
}

func Test_Manager_loginFailure(t *testing.T) {
	api := &stubAPI{err: &apiclient.AuthenticationError{}}
	mgr := NewManager(NewMemStore(), api, nopLogger{})

	_, err := mgr.Login(context.Background(), "alumno1", "nope")
	assert.Error(t, err)
	assert.IsType(t, &apiclient.AuthenticationError{}, err)

	// still anonymous, not unknown
	assert.Equal(t, StateAnonymous, mgr.Snapshot().State)
	assert.Empty(t, mgr.Token())
}

func Test_Manager_register(t *testing.T) {
	api := &stubAPI{
		token: "tok123",
		usr:   user.User{ID: "u1", Username: "ana_t", Rol: user.RoleEstudiante},
	}
	mgr := NewManager(NewMemStore(), api, nopLogger{})

	usr, err := mgr.Register(context.Background(), user.NewUser{Username: "ana_t"})
	assert.NoError(t, err)
	assert.Equal(t, user.RoleEstudiante, usr.Rol)
	assert.True(t, mgr.Snapshot().Authenticated())
}

func Test_Manager_logout(t *testing.T) {
	store := NewMemStore()
	assert.NoError(t, store.Save(newSession()))
	mgr := NewManager(store, &stubAPI{}, nopLogger{})

	mgr.Logout()
	assert.Equal(t, StateAnonymous, mgr.Snapshot().State)
	assert.True(t, store.Load().IsZero())
}

func Test_Manager_invalidate(t *testing.T) {
	store := NewMemStore()
	assert.NoError(t, store.Save(newSession()))
	mgr := NewManager(store, &stubAPI{}, nopLogger{})

	mgr.Invalidate()
	assert.Equal(t, StateAnonymous, mgr.Snapshot().State)
	assert.True(t, store.Load().IsZero())

	// idempotent on an anonymous session
	mgr.Invalidate()
	assert.Equal(t, StateAnonymous, mgr.Snapshot().State)
}
