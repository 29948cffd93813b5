package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of user roles. It is checked exhaustively at the
// policy boundary rather than compared as free-form strings in handlers.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleRenter Role = "renter"
)

// ParseRole validates a role string coming in over the wire.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleRenter:
		return Role(s), true
	}
	return "", false
}

// User represents the user model stored in the database
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"type:varchar(120);uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	FirstName string         `json:"first_name" gorm:"type:varchar(50)"`
	LastName  string         `json:"last_name" gorm:"type:varchar(50)"`
	Phone     string         `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Role      Role           `json:"user_type" gorm:"type:varchar(20);index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// DisplayName is the public-facing name used in projections.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// OwnerContact is the read-only projection of a property owner exposed on
// public property detail. Email is deliberately absent.
type OwnerContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// RenterContact is the projection of a renter shown to the owner reviewing
// booking requests against their properties.
type RenterContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// OwnerContactOf builds the public owner projection.
func OwnerContactOf(u *User) *OwnerContact {
	if u == nil {
		return nil
	}
	return &OwnerContact{Name: u.DisplayName(), Phone: u.Phone}
}

// RenterContactOf builds the renter projection for owner-facing booking lists.
func RenterContactOf(u *User) *RenterContact {
	if u == nil {
		return nil
	}
	return &RenterContact{Name: u.DisplayName(), Email: u.Email, Phone: u.Phone}
}
