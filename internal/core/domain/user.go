package domain

import "time"

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	Phone        string    `json:"telefone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"ativo"`
	CreatedAt    time.Time `json:"criado_em"`
	UpdatedAt    time.Time `json:"atualizado_em"`
}

// ActiveDriver reports whether the user can hold fretes.
func (u *User) ActiveDriver() bool {
	return u.Role == RoleMotorista && u.Active
}
