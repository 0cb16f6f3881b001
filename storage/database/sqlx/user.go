package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Oggm2/registroServicio/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// usuarioRow maps the usuarios table; optional student columns are nullable.
type usuarioRow struct {
	ID            string      `db:"id"`
	Username      string      `db:"username"`
	PasswordHash  []byte      `db:"password_hash"`
	Rol           string      `db:"rol"`
	Nombre        null.String `db:"nombre_completo"`
	Matricula     null.String `db:"matricula"`
	Carrera       null.String `db:"carrera"`
	Celular       null.String `db:"celular"`
	CorreoAlterno null.String `db:"correo_alterno"`
	IsActive      bool        `db:"is_active"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
	LastLogin     null.Time   `db:"last_login"`
}

func (row usuarioRow) toUser() user.User {
	usr := user.User{
		ID:            row.ID,
		Username:      row.Username,
		PasswordHash:  row.PasswordHash,
		Rol:           user.Role(row.Rol),
		Nombre:        row.Nombre.String,
		Matricula:     row.Matricula.String,
		Carrera:       row.Carrera.String,
		Celular:       row.Celular.String,
		CorreoAlterno: row.CorreoAlterno.String,
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
	if row.LastLogin.Valid {
		usr.LastLogin = row.LastLogin.Time.UTC()
	}
	return usr
}

func newRow(usr user.User) usuarioRow {
	return usuarioRow{
		ID:            usr.ID,
		Username:      usr.Username,
		PasswordHash:  usr.PasswordHash,
		Rol:           usr.Rol.String(),
		Nombre:        null.NewString(usr.Nombre, usr.Nombre != ""),
		Matricula:     null.NewString(usr.Matricula, usr.Matricula != ""),
		Carrera:       null.NewString(usr.Carrera, usr.Carrera != ""),
		Celular:       null.NewString(usr.Celular, usr.Celular != ""),
		CorreoAlterno: null.NewString(usr.CorreoAlterno, usr.CorreoAlterno != ""),
		IsActive:      usr.IsActive,
		CreatedAt:     usr.CreatedAt,
		UpdatedAt:     usr.UpdatedAt,
		LastLogin:     null.NewTime(usr.LastLogin, !usr.LastLogin.IsZero()),
	}
}

const selectCols = `id, username, password_hash, rol, nombre_completo, matricula, carrera,
	celular, correo_alterno, is_active, created_at, updated_at, last_login`

func (repo *userRepository) CheckUniqueness(username, matricula, correo string, excludedUsers ...user.User) error {
	exclIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		exclIDs = append(exclIDs, usr.ID)
	}

	check := func(col, val string, dupErr error) error {
		if val == "" {
			return nil
		}
		query := `SELECT COUNT(*) FROM usuarios WHERE ` + col + ` = ?`
		args := []interface{}{val}
		if len(exclIDs) > 0 {
			q, inArgs, err := sqlx.In(query+` AND id NOT IN (?)`, val, exclIDs)
			if err != nil {
				return errors.Wrap(err, "building uniqueness query")
			}
			query, args = q, inArgs
		}
		var count int
		if err := repo.db.Get(&count, repo.db.Rebind(query), args...); err != nil {
			return errors.Wrapf(err, "checking %s uniqueness", col)
		}
		if count > 0 {
			return dupErr
		}
		return nil
	}

	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	if err := check("matricula", matricula, user.ErrMatriculaExists); err != nil {
		return err
	}
	return check("correo_alterno", correo, user.ErrCorreoExists)
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	row := newRow(usr)

	const query = `
		INSERT INTO usuarios (` + selectCols + `)
		VALUES (:id, :username, :password_hash, :rol, :nombre_completo, :matricula, :carrera,
			:celular, :correo_alterno, :is_active, :created_at, :updated_at, :last_login)`
	if _, err := repo.db.NamedExec(query, row); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []usuarioRow
	if err := repo.db.Select(&rows, `SELECT `+selectCols+` FROM usuarios ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

func (repo *userRepository) getWhere(where string, arg interface{}) (user.User, error) {
	var row usuarioRow
	err := repo.db.Get(&row, repo.db.Rebind(`SELECT `+selectCols+` FROM usuarios WHERE `+where), arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getWhere(`id = ?`, id)
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getWhere(`username = ?`, username)
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	row := newRow(usr)

	const query = `
		UPDATE usuarios
		SET username = :username, password_hash = :password_hash, rol = :rol,
			nombre_completo = :nombre_completo, matricula = :matricula, carrera = :carrera,
			celular = :celular, correo_alterno = :correo_alterno, is_active = :is_active,
			updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`
	res, err := repo.db.NamedExec(query, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM usuarios WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err := repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
