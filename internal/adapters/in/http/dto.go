package http

import (
	"strconv"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateParcelRequest is the body of POST /api/v1/parcels.
type CreateParcelRequest struct {
	Receiver ReceiverRequest `json:"receiver"`
	Details  DetailsRequest  `json:"details"`
	Fee      float64         `json:"fee"`
}

// ReceiverRequest is the receiver snapshot of a new parcel.
type ReceiverRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// DetailsRequest describes the contents of a new parcel.
type DetailsRequest struct {
	Type        string  `json:"type"`
	WeightKg    float64 `json:"weightKg"`
	Description string  `json:"description"`
}

// CreateParcelResponse returns the identifiers of a freshly created parcel.
type CreateParcelResponse struct {
	ID         string `json:"id"`
	TrackingID string `json:"trackingId"`
}

// TransitionRequest carries the optional note of a lifecycle action.
type TransitionRequest struct {
	Note string `json:"note"`
}

// BlockRequest is the body of PUT /api/v1/parcels/:id/block.
type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

// ParcelStateResponse is returned after every successful mutation.
type ParcelStateResponse struct {
	ID         string    `json:"id"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	IsBlocked  bool      `json:"isBlocked"`
	Version    int       `json:"version"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ParcelItemResponse is one row of a parcel listing.
type ParcelItemResponse struct {
	ID              string    `json:"id"`
	TrackingID      string    `json:"trackingId"`
	SenderID        string    `json:"senderId"`
	ReceiverID      *string   `json:"receiverId,omitempty"`
	ReceiverName    string    `json:"receiverName"`
	DestinationCity string    `json:"destinationCity"`
	ParcelType      string    `json:"parcelType"`
	Status          string    `json:"status"`
	IsBlocked       bool      `json:"isBlocked"`
	Fee             float64   `json:"fee"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ParcelPageResponse is one page of a parcel listing.
type ParcelPageResponse struct {
	Items []ParcelItemResponse `json:"items"`
	Total int64                `json:"total"`
}

// StatusLogItemResponse is one public status history entry.
type StatusLogItemResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedByRole string    `json:"updatedByRole"`
	Note          string    `json:"note,omitempty"`
}

// TrackParcelResponse is the public tracking view.
type TrackParcelResponse struct {
	TrackingID      string                  `json:"trackingId"`
	ParcelType      string                  `json:"parcelType"`
	DestinationCity string                  `json:"destinationCity"`
	CurrentStatus   string                  `json:"currentStatus"`
	IsBlocked       bool                    `json:"isBlocked"`
	CreatedAt       time.Time               `json:"createdAt"`
	StatusLogs      []StatusLogItemResponse `json:"statusLogs"`
}

// UserItemResponse is one row of the admin user directory.
type UserItemResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserPageResponse is one page of the admin user directory.
type UserPageResponse struct {
	Items []UserItemResponse `json:"items"`
	Total int64              `json:"total"`
}

func parcelStateResponse(aggregate *parcel.Parcel) ParcelStateResponse {
	return ParcelStateResponse{
		ID:         aggregate.ID().String(),
		TrackingID: aggregate.TrackingID().String(),
		Status:     aggregate.Status().String(),
		IsBlocked:  aggregate.IsBlocked(),
		Version:    aggregate.Version(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}

func toTrackParcelResponse(view queries.TrackParcelQueryResponse) TrackParcelResponse {
	logs := make([]StatusLogItemResponse, len(view.StatusLogs))
	for i, log := range view.StatusLogs {
		logs[i] = StatusLogItemResponse{
			Status:        log.Status,
			Timestamp:     log.Timestamp,
			UpdatedByRole: log.UpdatedByRole,
			Note:          log.Note,
		}
	}
	return TrackParcelResponse{
		TrackingID:      view.TrackingID,
		ParcelType:      view.ParcelType,
		DestinationCity: view.DestinationCity,
		CurrentStatus:   view.CurrentStatus,
		IsBlocked:       view.IsBlocked,
		CreatedAt:       view.CreatedAt,
		StatusLogs:      logs,
	}
}

func toParcelItemsResponse(items []queries.ParcelListItemResponse) []ParcelItemResponse {
	response := make([]ParcelItemResponse, len(items))
	for i, item := range items {
		response[i] = ParcelItemResponse{
			ID:              item.ID,
			TrackingID:      item.TrackingID,
			SenderID:        item.SenderID,
			ReceiverID:      item.ReceiverID,
			ReceiverName:    item.ReceiverName,
			DestinationCity: item.DestinationCity,
			ParcelType:      item.ParcelType,
			Status:          item.Status,
			IsBlocked:       item.IsBlocked,
			Fee:             item.Fee,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		}
	}
	return response
}

func toParcelPageResponse(items []queries.ParcelListItemResponse, total int64) ParcelPageResponse {
	return ParcelPageResponse{Items: toParcelItemsResponse(items), Total: total}
}

// pageParams reads the page and limit query parameters. Missing values fall
// back to the query defaults; malformed values are a client error.
func pageParams(ctx echo.Context) (page, limit int, err error) {
	page, err = intParam(ctx, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intParam(ctx, "limit", 0)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func intParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
