package handler

import "github.com/warehouse-suite/user-service/internal/core/domain"

// messageResponse is the standard envelope for error bodies and bare
// acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	CodUser  string `json:"codUser"  validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Role     string `json:"role"`
}

func (r registerRequest) toUser() domain.User {
	return domain.User{
		Code:     r.CodUser,
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Surname:  r.Surname,
		Role:     r.Role,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is returned by both register and login.
type authResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}
