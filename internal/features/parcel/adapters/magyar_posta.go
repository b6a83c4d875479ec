package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/format"
	"parcel-tracker/internal/features/parcel/ports"
)

// MagyarPostaAdapter tracks parcels through the Magyar Posta tracking API
// (GET /api/tracking/v1/parcels/{id}).
type MagyarPostaAdapter struct {
	baseURL string
	client  *http.Client
}

const magyarPostaTimeLayout = "2006-01-02T15:04:05"

// NewMagyarPostaAdapter creates a MagyarPostaAdapter with the given base URL.
func NewMagyarPostaAdapter(baseURL string, client *http.Client) *MagyarPostaAdapter {
	return &MagyarPostaAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *MagyarPostaAdapter) Carrier() domain.Carrier { return domain.CarrierMagyarPosta }

// AcceptsFormat reports whether trackingID is an S10 barcode; domestic Magyar
// Posta numbers use the HU-suffixed subset of the same format.
func (a *MagyarPostaAdapter) AcceptsFormat(trackingID string) bool {
	return format.UPU.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *MagyarPostaAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *MagyarPostaAdapter) RequiresPostCode() bool { return false }

var magyarPostaStatusTable = map[string]domain.Status{
	"ELECTRONIC_DATA":       domain.StatusPreadvice,
	"IN_TRANSPORT":          domain.StatusInTransit,
	"CUSTOMS_PROCEDURE":     domain.StatusCustoms,
	"ARRIVED_AT_DELIVERY":   domain.StatusInWarehouse,
	"DELIVERY_IN_PROGRESS":  domain.StatusOutForDelivery,
	"UNSUCCESSFUL_DELIVERY": domain.StatusDeliveryFailure,
	"DELIVERED":             domain.StatusDelivered,
}

// magyarPostaResponse represents the JSON structure of the tracking API.
type magyarPostaResponse struct {
	Parcel struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Events []struct {
			Time        string `json:"time"`
			Code        string `json:"code"`
			Description string `json:"description"`
			Location    struct {
				City string `json:"city"`
				Zip  string `json:"zip"`
			} `json:"location"`
		} `json:"events"`
	} `json:"parcel"`
}

// GetParcel fetches the parcel and normalizes it.
func (a *MagyarPostaAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/api/tracking/v1/parcels/%s?language=en", a.baseURL, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp magyarPostaResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	parcel := resp.Parcel
	if parcel.ID == "" && len(parcel.Events) == 0 {
		return nil, fmt.Errorf("%w: empty parcel record", ports.ErrParcelNonExistent)
	}

	history := make([]domain.HistoryItem, 0, len(parcel.Events))
	for _, evt := range parcel.Events {
		description := evt.Description
		if description == "" {
			description = evt.Code
		}

		ts, _ := time.Parse(magyarPostaTimeLayout, evt.Time)

		location := domain.UnknownLocation
		switch {
		case evt.Location.Zip != "" && evt.Location.City != "":
			location = evt.Location.Zip + " " + evt.Location.City
		case evt.Location.City != "":
			location = evt.Location.City
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := magyarPostaStatusTable[parcel.Status]
	if !ok {
		status = unknownStatus(domain.CarrierMagyarPosta, parcel.Status)
	}

	id := parcel.ID
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID:      id,
		History: history,
		Status:  status,
	}, nil
}
