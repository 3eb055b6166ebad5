package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-suite/user-service/internal/core/domain"
)

// ctxUser extracts the account the auth middleware resolved from the bearer
// token. Its absence means the route was wired without the middleware or the
// token carried no usable identity; either way the request is unauthorized.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}
