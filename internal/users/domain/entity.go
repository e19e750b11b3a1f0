package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles a user account can carry
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// MinPasswordLen is the minimum accepted password length
const MinPasswordLen = 8

// User represents a registered account. PasswordHash is a bcrypt hash;
// the plain password never leaves the registration/login path.
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a customer account with a hashed password
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// CheckPassword compares a plain password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
