package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Oggm2/registroServicio/core/user"
)

// roleMiddleware only allows authenticated users whose role is in roles.
func roleMiddleware(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, rol := range roles {
				if claims.Rol == rol {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}
