package user

import (
	"errors"
	"strings"
	"time"

	"localmart/internal/auth"
)

type Profile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Role        auth.Role  `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile: missing id")
	}
	return nil
}

// SessionUser is the part of the profile kept in the local session record.
func (p *Profile) SessionUser() *auth.User {
	return &auth.User{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Role:  p.Role,
	}
}

// UpdateProfileParams is a partial update; nil fields are left as they are.
type UpdateProfileParams struct {
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

func (p UpdateProfileParams) empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Bio == nil && p.AvatarURL == nil && p.DateOfBirth == nil
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

type List struct {
	Items []Profile
	Total int
}
