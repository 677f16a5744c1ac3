package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (RegisterRequest) messages() Messages {
	return Messages{
		"*.required":   "All fields (username, email, password) are required",
		"Username.min": "Username must be at least 3 characters",
		"Username.max": "Username must be at most 50 characters",
		"Email.email":  "Invalid email format",
		"Password.min": "Password must be at least 6 characters",
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) messages() Messages {
	return Messages{"*.required": "Email and password are required"}
}

// UpdateUserRequest is a partial profile update; empty fields are left alone.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

func (UpdateUserRequest) messages() Messages {
	return RegisterRequest{}.messages()
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
