package handler

import "github.com/hostelhub/hostel-api/internal/core/domain"

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type registerRequest struct {
	Username  string `json:"username"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"      validate:"omitempty,oneof=admin staff resident"`
}

type registerResponse struct {
	Message string         `json:"message"`
	User    domain.Profile `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the flat payload the web client expects: the token
// plus the sanitized projection, field by field.
type loginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	UserID    string `json:"userid"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type updateProfileRequest struct {
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type userResponse struct {
	User domain.Profile `json:"user"`
}

type dashboardResponse struct {
	Message string         `json:"message"`
	User    domain.Profile `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
