package inmemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Oggm2/registroServicio/core/user"
)

func newRepo() user.Repository {
	return NewUserRepository(Open())
}

func mustCreate(t *testing.T, repo user.Repository, usr user.User) user.User {
	t.Helper()
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func Test_userRepository_crud(t *testing.T) {
	repo := newRepo()

	users, err := repo.QueryAllUsers()
	assert.NoError(t, err)
	assert.Empty(t, users)

	usr := mustCreate(t, repo, user.User{Username: "alumno1", Rol: user.RoleEstudiante})
	assert.NotEmpty(t, usr.ID)

	got, err := repo.GetUserByID(usr.ID)
	assert.NoError(t, err)
	assert.Equal(t, usr, got)

	got, err = repo.GetUserByUsername("alumno1")
	assert.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = repo.GetUserByID("nope")
	assert.Equal(t, user.ErrNotFound, err)
	_, err = repo.GetUserByUsername("nope")
	assert.Equal(t, user.ErrNotFound, err)

	usr.Carrera = "ITC"
	got, err = repo.UpdateUser(usr)
	assert.NoError(t, err)
	assert.Equal(t, "ITC", got.Carrera)

	_, err = repo.UpdateUser(user.User{ID: "nope"})
	assert.Equal(t, user.ErrNotFound, err)

	assert.NoError(t, repo.DeleteUsersByID(usr.ID))
	_, err = repo.GetUserByID(usr.ID)
	assert.Equal(t, user.ErrNotFound, err)
}

func Test_userRepository_CheckUniqueness(t *testing.T) {
	repo := newRepo()

	usr := mustCreate(t, repo, user.User{
		Username:      "alumno1",
		Matricula:     "a01234567",
		CorreoAlterno: "ana@test.mx",
	})

	assert.NoError(t, repo.CheckUniqueness("otro", "a09999999", "otro@test.mx"))
	assert.Equal(t, user.ErrUsernameExists, repo.CheckUniqueness("alumno1", "", ""))
	assert.Equal(t, user.ErrMatriculaExists, repo.CheckUniqueness("", "a01234567", ""))
	assert.Equal(t, user.ErrCorreoExists, repo.CheckUniqueness("", "", "ana@test.mx"))

	// empty identifiers never collide
	mustCreate(t, repo, user.User{Username: "alumno2"})
	assert.NoError(t, repo.CheckUniqueness("otro", "", ""))

	// the owner itself is excluded on update
	assert.NoError(t, repo.CheckUniqueness("alumno1", "a01234567", "ana@test.mx", usr))
}
