package domain

import "errors"

// DefaultRole is assigned to accounts registered without an explicit role.
const DefaultRole = "Operational"

var ErrInvalidUserData = errors.New("invalid user data")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")

// User models a warehouse operator account. Code is the external identifier
// (badge/employee number) and is distinct from the login username.
type User struct {
	Code     string `json:"codUser"`
	Username string `json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     string `json:"role"`
}

// Validate reports whether every field required to create an account is
// present. Role is optional and defaulted at registration time.
func (u *User) Validate() error {
	if u.Code == "" || u.Username == "" || u.Password == "" || u.Name == "" || u.Surname == "" {
		return ErrInvalidUserData
	}
	return nil
}
