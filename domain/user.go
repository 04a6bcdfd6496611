package domain

import "time"

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetUser    = "user retrieved successfully"
	MessageSuccessUpdateUser = "profile updated successfully"
	MessageSuccessDeleteUser = "user deleted successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetUser    = "failed to retrieve user"
	MessageFailedUpdateUser = "failed to update profile"
	MessageFailedDeleteUser = "failed to delete user"

	ErrEmailAlreadyExists = NewValidationError("email already exists")
	ErrInvalidCredentials = NewAuthError("invalid credentials")
	ErrUserNotFound       = NewNotFoundError("user not found")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email,max=120"`
		Password string `json:"password" validate:"required,min=6"`
		Phone    string `json:"phone" validate:"omitempty,max=15"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateUserRequest struct {
		Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
		Phone *string `json:"phone" validate:"omitempty,max=15"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		CreatedAt time.Time `json:"created_at"`
	}

	LoginResponse struct {
		AccessToken string       `json:"access_token"`
		User        UserResponse `json:"user"`
	}
)
