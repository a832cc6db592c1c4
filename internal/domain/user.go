package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	FullName                string     `json:"full_name" db:"full_name"`
	Role                    string     `json:"role" db:"role"`
	ChefID                  *uuid.UUID `json:"chef_id,omitempty" db:"chef_id"`
	DepartmentID            *uuid.UUID `json:"department_id,omitempty" db:"department_id"`
	Position                *string    `json:"position,omitempty" db:"position"`
	IsActive                bool       `json:"is_active" db:"is_active"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt               *time.Time `json:"-" db:"deleted_at"`

	Department *Department `json:"department,omitempty" db:"-"`
	Chef       *User       `json:"chef,omitempty" db:"-"`
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleChef  UserRole = "chef"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleChef, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role in the
// admin > chef > user hierarchy. Fine-grained decisions go through the
// policy table instead.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "chef":
		return u.Role == "chef" || u.Role == "admin"
	case "user":
		return u.Role == "user" || u.Role == "chef" || u.Role == "admin"
	default:
		return false
	}
}

type CreateUserInput struct {
	Email        string     `json:"email" validate:"required,email"`
	Password     string     `json:"password" validate:"required,min=8"`
	FullName     string     `json:"full_name" validate:"required,min=2"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	Position     *string    `json:"position,omitempty"`
}

type UpdateUserInput struct {
	FullName     *string     `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email        *string     `json:"email,omitempty" validate:"omitempty,email"`
	Password     *string     `json:"password,omitempty" validate:"omitempty,min=8"`
	Position     **string    `json:"position,omitempty"`
	DepartmentID **uuid.UUID `json:"department_id,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=user chef admin"`
}

type AssignChefInput struct {
	UserID uuid.UUID  `json:"user_id" validate:"required"`
	ChefID *uuid.UUID `json:"chef_id"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
