package auth

import (
	"fmt"

	"localmart/internal/api"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated-user record kept in local storage.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) Validate() error {
	if err := api.Required(map[string]string{"id": u.ID, "email": u.Email}); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	return nil
}
