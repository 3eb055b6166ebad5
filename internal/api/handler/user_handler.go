package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warehouse-suite/user-service/internal/api/metrics"
	"github.com/warehouse-suite/user-service/internal/core/domain"
	"github.com/warehouse-suite/user-service/internal/core/ports"
)

// UserHandler exposes the user account operations over HTTP. All error
// rendering is delegated to the central HTTPErrorHandler.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidUserData
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidUserData
	}

	user, token, err := h.service.Register(c.Request().Context(), req.toUser())
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "Registration successful",
		User:    user,
		Token:   token,
	})
}

func registerOutcome(err error) string {
	switch err {
	case domain.ErrUserExists:
		return "conflict"
	case domain.ErrInvalidUserData:
		return "invalid"
	default:
		return "error"
	}
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  messageResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidCredentials
	}

	user, token, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// GetMe returns the account resolved from the bearer token.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  messageResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns every registered user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetByCode looks up a user by its external code.
//
// @Summary      Get user by code
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        codUser  path      string  true  "User code"
// @Success      200      {object}  domain.User
// @Failure      404      {object}  messageResponse
// @Router       /users/{codUser} [get]
func (h *UserHandler) GetByCode(c echo.Context) error {
	code := c.Param("codUser")
	if code == "" {
		return domain.ErrInvalidUserData
	}

	user, err := h.service.GetByCode(c.Request().Context(), code)
	if err != nil {
		metrics.CodeLookupsTotal.WithLabelValues("miss").Inc()
		return err
	}

	metrics.CodeLookupsTotal.WithLabelValues("hit").Inc()
	return c.JSON(http.StatusOK, user)
}
