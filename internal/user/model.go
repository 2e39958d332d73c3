package user

import "time"

type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string
	Role      Role
	PixKey    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
