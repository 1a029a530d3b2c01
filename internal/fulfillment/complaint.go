package fulfillment

import (
	"context"
	"os"
	"time"
)

type ComplaintRequest struct {
	Name       string `json:"nombre"`
	IDNumber   string `json:"rut"`
	Message    string `json:"mensaje"`
	Department int    `json:"departamento"`
	Email      string `json:"mail"`
}

type complaintResponse struct {
	ID string `json:"id"`
}

type IComplaintClient interface {
	Register(ctx context.Context, req ComplaintRequest) (string, error)
}

type complaintClient struct {
	baseClient
}

func NewComplaintClient() IComplaintClient {
	baseURL := os.Getenv("COMPLAINTS_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8001"
	}

	return &complaintClient{
		baseClient: newBaseClient(baseURL, 15*time.Second),
	}
}

func (c *complaintClient) Register(ctx context.Context, req ComplaintRequest) (string, error) {
	var res complaintResponse
	if err := c.postJSON(ctx, "/reclamos", req, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}
