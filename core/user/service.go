package user

import (
	"errors"
	"time"

	"github.com/Oggm2/registroServicio/core"
)

var (
	// errors
	ErrNotFound        = errors.New("usuario no encontrado")
	ErrUsernameExists  = errors.New("el nombre de usuario ya existe")
	ErrMatriculaExists = errors.New("la matrícula ya está registrada")
	ErrCorreoExists    = errors.New("el correo alterno ya está registrado")
	ErrWrongPassword   = errors.New("la contraseña actual es incorrecta")
)

type (
	Repository interface {
		// CheckUniqueness reports ErrUsernameExists, ErrMatriculaExists or
		// ErrCorreoExists when another user (not in excludedUsers) already
		// holds one of the given identifiers. Empty identifiers are skipped.
		CheckUniqueness(username, matricula, correoAlterno string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsername(username string) (User, error)
		UpdateUser(usr User) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(uname, matricula, correo string, exclUsers ...User) error {
	return svc.repo.CheckUniqueness(uname, matricula, correo, exclUsers...)
}

// Register creates an Estudiante account from a self-registration payload.
func (svc *Service) Register(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Username:      nu.Username,
		Rol:           RoleEstudiante,
		Nombre:        nu.Nombre,
		Matricula:     nu.Matricula,
		Carrera:       nu.Carrera,
		Celular:       nu.Celular,
		CorreoAlterno: nu.CorreoAlterno,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

// ChangePassword replaces usr's password after checking the current one.
// A wrong current password yields ErrWrongPassword.
func (svc *Service) ChangePassword(usr User, cp ChangePassword) error {
	if err := usr.CheckPassword(cp.CurrentPassword); err != nil {
		return ErrWrongPassword
	}
	if err := usr.SetPassword(cp.NewPassword); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err := svc.repo.UpdateUser(usr)
	return err
}

// Save creates usr when it has no ID yet, otherwise updates it.
func (svc *Service) Save(usr User) error {
	var err error
	usr.UpdatedAt = time.Now().UTC()
	if usr.ID == "" {
		usr.CreatedAt = usr.UpdatedAt
		_, err = svc.repo.CreateUser(usr)
	} else {
		_, err = svc.repo.UpdateUser(usr)
	}
	return err
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}
