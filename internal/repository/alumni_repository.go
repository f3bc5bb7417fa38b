package repository

import (
	"context"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
)

// AlumniRepository wraps the alumni approval endpoints.
type AlumniRepository struct {
	client *api.Client
}

// NewAlumniRepository constructs an AlumniRepository.
func NewAlumniRepository(client *api.Client) *AlumniRepository {
	return &AlumniRepository{client: client}
}

// Pending lists sign-ups waiting on a professor.
func (r *AlumniRepository) Pending(ctx context.Context, professorID string) <-chan Resource[[]models.AlumniRequest] {
	return emit(ctx, "Failed to load pending requests", func(ctx context.Context) ([]models.AlumniRequest, error) {
		return r.client.PendingAlumniRequests(ctx, professorID)
	})
}

// Approve approves a pending sign-up.
func (r *AlumniRepository) Approve(ctx context.Context, requestID string) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "Failed to approve request", func(ctx context.Context) (*models.ApiResponse, error) {
		return r.client.ApproveAlumniRequest(ctx, requestID)
	})
}

// Reject rejects a pending sign-up.
func (r *AlumniRepository) Reject(ctx context.Context, requestID string) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "Failed to reject request", func(ctx context.Context) (*models.ApiResponse, error) {
		return r.client.RejectAlumniRequest(ctx, requestID)
	})
}
