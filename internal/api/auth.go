package api

import (
	"context"
	"net/http"

	"github.com/smarteval/smarteval-go/internal/models"
)

// Register creates a new account and triggers OTP delivery.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "auth/register",
		path:     "auth/register",
		body:     req,
		noAuth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOtp confirms the code mailed during registration.
func (c *Client) VerifyOtp(ctx context.Context, req models.OtpVerificationRequest) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "auth/verify-otp",
		path:     "auth/verify-otp",
		body:     req,
		noAuth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token and user profile.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "auth/login",
		path:     "auth/login",
		body:     req,
		noAuth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOtp requests a fresh verification code.
func (c *Client) ResendOtp(ctx context.Context, req models.ResendOtpRequest) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "auth/resend-otp",
		path:     "auth/resend-otp",
		body:     req,
		noAuth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
