package auth

import "github.com/amirasaad/ledger/pkg/dto"

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is returned by a successful login.
type Session struct {
	User  *dto.UserRead `json:"user"`
	Token string        `json:"token"`
}
