package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Oggm2/registroServicio/core"
	"github.com/Oggm2/registroServicio/core/user"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	SuccessResponse struct {
		Message string `json:"message"`
	}

	authApi struct {
		conf     *core.Config
		svc      *user.Service
		validate *validator.Validate
	}
)

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *user.Service, validate *validator.Validate) {
	api := authApi{
		conf:     conf,
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.PUT("/change-password", api.changePassword, jwt)

	adm := g.Group("/admin", jwt, roleMiddleware(user.RoleAdmin))
	adm.GET("/usuarios", api.queryUsers)

	est := g.Group("/estudiantes", jwt, roleMiddleware(user.RoleEstudiante))
	est.GET("/perfil", api.perfil)
}

func (api authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding body")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	usr, err := authenticate(data.Username, data.Password, api.svc)
	if err != nil {
		return err
	}
	if usr, err = api.svc.SetLastLogin(usr); err != nil {
		return errors.Wrap(err, "setting last login")
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding body")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		switch errors.Cause(err) {
		case user.ErrUsernameExists, user.ErrMatriculaExists, user.ErrCorreoExists:
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return err
	}

	usr, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, LoginResponse{Token: token, User: usr})
}

func (api authApi) changePassword(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return err
	}

	var data user.ChangePassword
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding body")
	}
	if err = api.validate.Struct(data); err != nil {
		return err
	}

	if err = api.svc.ChangePassword(usr, data); err != nil {
		if errors.Cause(err) == user.ErrWrongPassword {
			return core.NewValidationError(nil, core.FieldError{Field: "current_password", Error: user.ErrWrongPassword.Error()})
		}
		return errors.Wrap(err, "changing password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "contraseña actualizada correctamente"})
}

func (api authApi) queryUsers(ctx echo.Context) error {
	users, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api authApi) perfil(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}
