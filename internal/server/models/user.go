// Package models defines the records persisted by the account service.
package models

import (
	"time"
)

// Role is the fixed set of account roles. A role is chosen at registration
// and never changes afterwards.
type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleRecruiter}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Profile holds the free-form part of a user record.
type Profile struct {
	Bio    string   `json:"bio"`
	Skills []string `json:"skills"`
}

// User is the stored account. Password is always a bcrypt digest.
type User struct {
	ID          string
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        Role
	Profile     Profile
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicUser is the sanitized projection of User returned to clients. It has
// no password field at all.
type PublicUser struct {
	ID          string  `json:"_id"`
	FullName    string  `json:"fullname"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Role        Role    `json:"role"`
	Profile     Profile `json:"profile"`
}

// Public returns the sanitized view of u.
func (u *User) Public() *PublicUser {
	skills := u.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return &PublicUser{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile:     Profile{Bio: u.Profile.Bio, Skills: skills},
	}
}
