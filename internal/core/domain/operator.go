package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrOperatorNotFound = errors.New("operator not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already taken")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")
var ErrSessionNotFound = errors.New("session not found")

// Operator models an authenticated actor permitted to work with the inventory.
// PasswordHash never leaves the auth layer and is excluded from all payloads.
type Operator struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	FullName     string     `json:"full_name,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// IsAdmin reports whether the operator may mutate inventory.
func (o *Operator) IsAdmin() bool {
	return o.Role == RoleAdmin
}

// AuthDecision is the single identity shape both authentication resolvers
// (token verification, session lookup) produce for the boundary layer.
type AuthDecision struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
