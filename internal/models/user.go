package models

// UserRole represents the platform roles.
type UserRole string

const (
	RoleStudent   UserRole = "STUDENT"
	RoleProfessor UserRole = "PROFESSOR"
	RoleAlumni    UserRole = "ALUMNI"
)

// User mirrors the backend user schema. Replaced wholesale on each login,
// never mutated in place.
type User struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	IsVerified bool     `json:"isVerified"`
	IsApproved bool     `json:"isApproved"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest creates a new account. ProfessorEmail is only set for
// alumni sign-ups, which a professor must approve.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"required,oneof=STUDENT PROFESSOR ALUMNI"`
	ProfessorEmail string `json:"professorEmail,omitempty" validate:"omitempty,email"`
}

// OtpVerificationRequest completes registration.
type OtpVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required"`
}

// ResendOtpRequest asks for a fresh one-time code.
type ResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ApiResponse is the backend's generic acknowledgement body.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
