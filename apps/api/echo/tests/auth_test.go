package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Oggm2/registroServicio/apps/api/echo"
	"github.com/Oggm2/registroServicio/core/user"
)

func Test_authApi_login(t *testing.T) {
	app, _, usrRepo := setup(t)

	student := createUser(t, usrRepo, "alumno1", "s3cr3tpwd", user.RoleEstudiante, true)
	createUser(t, usrRepo, "exalumno", "s3cr3tpwd", user.RoleEstudiante, false)

	tests := []httpTest{
		{
			name: "empty body", wantCode: http.StatusBadRequest,
			body: marchallObj(t, echoapi.LoginRequest{}),
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "unknown user", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, echoapi.LoginRequest{Username: "nadie", Password: "s3cr3tpwd"}),
			wantData: marchallObj(t, httpErr{Error: "credenciales incorrectas"}),
		},
		{
			name: "wrong password", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, echoapi.LoginRequest{Username: "alumno1", Password: "nope"}),
			wantData: marchallObj(t, httpErr{Error: "credenciales incorrectas"}),
		},
		{
			name: "deactivated account", wantCode: http.StatusForbidden,
			body:     marchallObj(t, echoapi.LoginRequest{Username: "exalumno", Password: "s3cr3tpwd"}),
			wantData: marchallObj(t, httpErr{Error: "cuenta desactivada"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		body := marchallObj(t, echoapi.LoginRequest{Username: "alumno1", Password: "s3cr3tpwd"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp echoapi.LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, student.ID, resp.User.ID)
		assert.Equal(t, user.RoleEstudiante, resp.User.Rol)
		assert.False(t, resp.User.LastLogin.IsZero())

		// the token must open a protected route
		req, rec = newAuthRequest(http.MethodGet, "/api/estudiantes/perfil", resp.Token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_authApi_register(t *testing.T) {
	app, _, usrRepo := setup(t)

	existing := user.User{
		Username:  "a01234567",
		Rol:       user.RoleEstudiante,
		Matricula: "a01234567",
		IsActive:  true,
	}
	if err := existing.SetPassword("s3cr3tpwd"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if _, err := usrRepo.CreateUser(existing); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	newUser := func(uname, matricula string) user.NewUser {
		return user.NewUser{
			Username:  uname,
			Password:  "s3cr3tpwd",
			Nombre:    "Ana Torres",
			Matricula: matricula,
			Carrera:   "ITC",
		}
	}

	tests := []httpTest{
		{
			name: "password too short", wantCode: http.StatusBadRequest,
			body: marchallObj(t, user.NewUser{
				Username:  "ana_t",
				Password:  "nope",
				Nombre:    "Ana Torres",
				Matricula: "a01234568",
				Carrera:   "ITC",
			}),
			wantData: marchallObj(t, map[string]string{
				"password": "password must be at least 6 characters in length",
			}),
		},
		{
			name: "username taken", wantCode: http.StatusConflict,
			body:     marchallObj(t, newUser("a01234567", "a99999999")),
			wantData: marchallObj(t, httpErr{Error: "el nombre de usuario ya existe"}),
		},
		{
			name: "matricula taken", wantCode: http.StatusConflict,
			body:     marchallObj(t, newUser("otro_user", "a01234567")),
			wantData: marchallObj(t, httpErr{Error: "la matrícula ya está registrada"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		body := marchallObj(t, newUser("ana_t", "a01234568"))
		req, rec := newRequest(http.MethodPost, "/api/auth/register", body)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp echoapi.LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.User.ID)
		assert.Equal(t, "ana_t", resp.User.Username)
		assert.Equal(t, user.RoleEstudiante, resp.User.Rol)
		assert.True(t, resp.User.IsActive)
	})
}

func Test_authApi_changePassword(t *testing.T) {
	app, conf, usrRepo := setup(t)

	student := createUser(t, usrRepo, "alumno1", "0ldpwd!", user.RoleEstudiante, true)
	token := getToken(t, conf, student)

	tests := []httpTest{
		{
			name: "auth required", wantCode: http.StatusUnauthorized,
			body:     marchallObj(t, user.ChangePassword{CurrentPassword: "0ldpwd!", NewPassword: "n3wpwd!"}),
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "new password too short", token: token, wantCode: http.StatusBadRequest,
			body: marchallObj(t, user.ChangePassword{CurrentPassword: "0ldpwd!", NewPassword: "nope"}),
			wantData: marchallObj(t, map[string]string{
				"new_password": "new_password must be at least 6 characters in length",
			}),
		},
		{
			name: "wrong current password", token: token, wantCode: http.StatusBadRequest,
			body: marchallObj(t, user.ChangePassword{CurrentPassword: "nope00", NewPassword: "n3wpwd!"}),
			wantData: marchallObj(t, map[string]string{
				"current_password": "la contraseña actual es incorrecta",
			}),
		},
		{
			name: "ok", token: token, wantCode: http.StatusOK,
			body:     marchallObj(t, user.ChangePassword{CurrentPassword: "0ldpwd!", NewPassword: "n3wpwd!"}),
			wantData: marchallObj(t, echoapi.SuccessResponse{Message: "contraseña actualizada correctamente"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, "/api/auth/change-password", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("old password no longer works", func(t *testing.T) {
		body := marchallObj(t, echoapi.LoginRequest{Username: "alumno1", Password: "0ldpwd!"})
		req, rec := newRequest(http.MethodPost, "/api/auth/login", body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		body = marchallObj(t, echoapi.LoginRequest{Username: "alumno1", Password: "n3wpwd!"})
		req, rec = newRequest(http.MethodPost, "/api/auth/login", body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_authApi_adminUsers(t *testing.T) {
	app, conf, usrRepo := setup(t)

	student := createUser(t, usrRepo, "alumno1", "s3cr3tpwd", user.RoleEstudiante, true)
	becario := createUser(t, usrRepo, "becario1", "s3cr3tpwd", user.RoleBecario, true)
	admin := createUser(t, usrRepo, "admin1", "s3cr3tpwd", user.RoleAdmin, true)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "estudiante forbidden", token: getToken(t, conf, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "no tienes permisos para esta acción"}),
		},
		{
			name: "becario forbidden", token: getToken(t, conf, becario), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "no tienes permisos para esta acción"}),
		},
		{
			name: "admin gets all", token: getToken(t, conf, admin), wantCode: http.StatusOK,
			wantData: marchallList(t, student, becario, admin),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/admin/usuarios", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_perfil(t *testing.T) {
	app, conf, usrRepo := setup(t)

	student := createUser(t, usrRepo, "alumno1", "s3cr3tpwd", user.RoleEstudiante, true)
	admin := createUser(t, usrRepo, "admin1", "s3cr3tpwd", user.RoleAdmin, true)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "admin forbidden", token: getToken(t, conf, admin), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "no tienes permisos para esta acción"}),
		},
		{
			name: "own profile", token: getToken(t, conf, student), wantCode: http.StatusOK,
			wantData: marchallObj(t, student),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/estudiantes/perfil", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
