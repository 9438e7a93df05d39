package model

import (
	"time"
)

const (
	RoleLecturer    = "Lecturer"
	RoleCoordinator = "ProgramCoordinator"
	RoleAdmin       = "Admin"
	RoleHR          = "HR"
)

// AllRoles lists every role the system knows about, in display order.
var AllRoles = []string{RoleLecturer, RoleCoordinator, RoleAdmin, RoleHR}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	HourlyRate     float64   `json:"hourly_rate"`
	Roles          []string  `json:"roles"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
