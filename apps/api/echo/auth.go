package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Oggm2/registroServicio/core"
	"github.com/Oggm2/registroServicio/core/user"
)

const jwtContextKey = "userToken"

type Claims struct {
	jwt.StandardClaims

	Username     string    `json:"username"`
	Rol          user.Role `json:"rol"`
	Nombre       string    `json:"nombre,omitempty"`
	IsEstudiante bool      `json:"is_estudiante"`
	IsBecario    bool      `json:"is_becario"`
	IsAdmin      bool      `json:"is_admin"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    jwtContextKey,
		Claims:        new(Claims),
	}
}

// GetUserClaims builds the JWT claims issued for usr.
func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   usr.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
		},
		Username:     usr.Username,
		Rol:          usr.Rol,
		Nombre:       usr.Nombre,
		IsEstudiante: usr.IsEstudiante(),
		IsBecario:    usr.IsBecario(),
		IsAdmin:      usr.IsAdmin(),
	}
}

// GenerateToken signs claims and returns the encoded JWT.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	encoded, err := token.SignedString([]byte(conf.SecretKey))
	return encoded, errors.Wrap(err, "signing token")
}

// authenticate checks that a user with the provided credentials exists and is active.
func authenticate(uname, pwd string, svc *user.Service) (user.User, error) {
	usr, err := svc.GetByUsername(uname)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errCredenciales
		}
		return user.User{}, errors.Wrap(err, "getting user by username")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return user.User{}, errCredenciales
	}
	if !usr.IsActive {
		return user.User{}, errAccountDeactivated
	}
	return usr, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	token, ok := ctx.Get(jwtContextKey).(*jwt.Token)
	if !ok {
		return Claims{}, errors.New("no token found in echo.Context")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}
	return *claims, nil
}

func getContextUser(ctx echo.Context, svc *user.Service) (user.User, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := svc.GetByID(claims.Subject)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "getting user by ID")
	}
	if !usr.IsActive {
		return user.User{}, errAccountDeactivated
	}
	return usr, nil
}
