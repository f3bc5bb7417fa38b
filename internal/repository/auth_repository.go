package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
)

// AuthRepository wraps the authentication endpoints.
type AuthRepository struct {
	client   *api.Client
	validate *validator.Validate
}

// NewAuthRepository constructs an AuthRepository.
func NewAuthRepository(client *api.Client, validate *validator.Validate) *AuthRepository {
	if validate == nil {
		validate = validator.New()
	}
	return &AuthRepository{client: client, validate: validate}
}

// Register creates an account and triggers OTP delivery.
func (r *AuthRepository) Register(ctx context.Context, req models.RegisterRequest) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "Registration failed", func(ctx context.Context) (*models.ApiResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.Register(ctx, req)
	})
}

// VerifyOtp confirms the emailed code.
func (r *AuthRepository) VerifyOtp(ctx context.Context, req models.OtpVerificationRequest) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "OTP verification failed", func(ctx context.Context) (*models.ApiResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.VerifyOtp(ctx, req)
	})
}

// Login exchanges credentials for a session.
func (r *AuthRepository) Login(ctx context.Context, req models.LoginRequest) <-chan Resource[*models.LoginResponse] {
	return emit(ctx, "Login failed", func(ctx context.Context) (*models.LoginResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.Login(ctx, req)
	})
}

// ResendOtp requests a fresh verification code.
func (r *AuthRepository) ResendOtp(ctx context.Context, email string) <-chan Resource[*models.ApiResponse] {
	req := models.ResendOtpRequest{Email: email}
	return emit(ctx, "Failed to resend OTP", func(ctx context.Context) (*models.ApiResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.ResendOtp(ctx, req)
	})
}
