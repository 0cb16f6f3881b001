package user

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/Oggm2/registroServicio/core"
)

// Role is the closed set of portal roles. It determines both the landing
// route and navigation visibility.
type Role string

const (
	RoleEstudiante Role = "Estudiante"
	RoleBecario    Role = "Becario"
	RoleAdmin      Role = "Admin"
)

var AllRoles = []Role{RoleEstudiante, RoleBecario, RoleAdmin}

func (r Role) String() string { return string(r) }

func (r Role) Valid() bool {
	switch r {
	case RoleEstudiante, RoleBecario, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Rol           Role      `json:"rol"`
	Nombre        string    `json:"nombre,omitempty"`
	Matricula     string    `json:"matricula,omitempty"`
	Carrera       string    `json:"carrera,omitempty"`
	Celular       string    `json:"celular,omitempty"`
	CorreoAlterno string    `json:"correo_alterno,omitempty"`
	IsActive      bool      `json:"is_active"`
	PasswordHash  []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
	LastLogin     time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsEstudiante() bool { return u.Rol == RoleEstudiante }
func (u *User) IsBecario() bool    { return u.Rol == RoleBecario }
func (u *User) IsAdmin() bool      { return u.Rol == RoleAdmin }

// NewUser contains information needed to register a new User.
// Self-registration always produces an Estudiante; becarios and admins are
// created through the admin tooling.
type NewUser struct {
	Username      string `json:"username" validate:"required,min=4,alphanum_"`
	Password      string `json:"password" validate:"required,min=6"`
	Nombre        string `json:"nombre_completo" validate:"required"`
	Matricula     string `json:"matricula" validate:"required"`
	Carrera       string `json:"carrera" validate:"required"`
	Celular       string `json:"celular"`
	CorreoAlterno string `json:"correo_alterno" validate:"omitempty,email"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Nombre = core.CleanString(nu.Nombre)
	nu.Matricula = core.CleanString(nu.Matricula, true /* lower */)
	nu.Carrera = core.CleanString(nu.Carrera)
	nu.Celular = core.CleanString(nu.Celular)
	nu.CorreoAlterno = core.CleanString(nu.CorreoAlterno, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Matricula, nu.CorreoAlterno)
}

// ChangePassword defines the payload to replace the caller's own password.
type ChangePassword struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (cp ChangePassword) Validate(validate *validator.Validate) error {
	return validate.Struct(cp)
}

// InitValidators registers the user domain's custom validations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(rolTag, rolValidation)
	core.RegisterCustomTranslation(validate, translator, rolTag, rolText)
}
