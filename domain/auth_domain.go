package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetMe          = "user retrieved successfully"
	MessageSuccessChangePassword = "password changed successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to retrieve user"
	MessageFailedChangePassword = "failed to change password"

	ErrUserNotFound         = errors.New("user not found")
	ErrEmailOrUsernameTaken = errors.New("user with this email or username already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRole          = errors.New("invalid role")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,min=3,max=50"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
		FirstName string `json:"first_name" validate:"required,max=50"`
		LastName  string `json:"last_name" validate:"required,max=50"`
		Phone     string `json:"phone" validate:"omitempty,max=20"`
		Role      string `json:"role" validate:"required,oneof=donor volunteer organization"`
	}

	LoginRequest struct {
		EmailOrUsername string `json:"email_or_username" validate:"required"`
		Password        string `json:"password" validate:"required"`
	}

	ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Phone     string    `json:"phone,omitempty"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		User  UserResponse `json:"user"`
		Token string       `json:"token"`
	}

	UserSummary struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role,omitempty"`
	}
)
