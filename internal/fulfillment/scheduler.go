package fulfillment

import (
	"context"
	"os"
	"time"

	"MunBotGolang/internal/entity"
)

type ReserveRequest struct {
	Name     string `json:"nombre"`
	IDNumber string `json:"rut"`
	Email    string `json:"mail"`
	Reason   string `json:"motivo"`
}

type ReservationResult struct {
	ReservationID string `json:"id_reserva"`
	Status        string `json:"estado"` // pending|confirmed|cancelled
}

type ISchedulerClient interface {
	ListAvailable(ctx context.Context) ([]entity.AppointmentSlot, error)
	Reserve(ctx context.Context, slotID string, req ReserveRequest) (*ReservationResult, error)
	Confirm(ctx context.Context, reservationID string) (*ReservationResult, error)
	Cancel(ctx context.Context, reservationID string) (*ReservationResult, error)
}

type schedulerClient struct {
	baseClient
}

func NewSchedulerClient() ISchedulerClient {
	baseURL := os.Getenv("SCHEDULER_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8002"
	}

	return &schedulerClient{
		baseClient: newBaseClient(baseURL, 15*time.Second),
	}
}

func (c *schedulerClient) ListAvailable(ctx context.Context) ([]entity.AppointmentSlot, error) {
	var slots []entity.AppointmentSlot
	if err := c.getJSON(ctx, "/avlb", &slots); err != nil {
		return nil, err
	}

	available := slots[:0]
	for _, s := range slots {
		if s.Reservable() {
			available = append(available, s)
		}
	}

	return available, nil
}

func (c *schedulerClient) Reserve(ctx context.Context, slotID string, req ReserveRequest) (*ReservationResult, error) {
	var res ReservationResult
	if err := c.postJSON(ctx, "/reservas/"+slotID, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *schedulerClient) Confirm(ctx context.Context, reservationID string) (*ReservationResult, error) {
	var res ReservationResult
	if err := c.postJSON(ctx, "/reservas/"+reservationID+"/usu_conf", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *schedulerClient) Cancel(ctx context.Context, reservationID string) (*ReservationResult, error) {
	var res ReservationResult
	if err := c.postJSON(ctx, "/reservas/"+reservationID+"/cancelar", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
