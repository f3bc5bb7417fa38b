package api

import (
	"context"
	"net/http"

	"github.com/smarteval/smarteval-go/internal/models"
)

// PendingAlumniRequests lists sign-ups waiting on a professor.
func (c *Client) PendingAlumniRequests(ctx context.Context, professorID string) ([]models.AlumniRequest, error) {
	var out []models.AlumniRequest
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "alumni/pending-requests/{professorId}",
		path:     "alumni/pending-requests/" + professorID,
	}, &out)
	return out, err
}

// ApproveAlumniRequest approves a pending sign-up. The transition is
// terminal.
func (c *Client) ApproveAlumniRequest(ctx context.Context, requestID string) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "alumni/approve/{requestId}",
		path:     "alumni/approve/" + requestID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectAlumniRequest rejects a pending sign-up. The transition is terminal.
func (c *Client) RejectAlumniRequest(ctx context.Context, requestID string) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "alumni/reject/{requestId}",
		path:     "alumni/reject/" + requestID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
