package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	// EmployeeID links the account to its directory entry; admin accounts
	// may have none.
	EmployeeID *string
	GoogleID   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
