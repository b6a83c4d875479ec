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

// AnPostAdapter tracks parcels through the An Post tracking history endpoint
// (GET /track/v3/history/{id}).
type AnPostAdapter struct {
	baseURL string
	client  *http.Client
}

const anPostTimeLayout = "2006-01-02T15:04:05"

// NewAnPostAdapter creates an AnPostAdapter with the given base URL.
func NewAnPostAdapter(baseURL string, client *http.Client) *AnPostAdapter {
	return &AnPostAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *AnPostAdapter) Carrier() domain.Carrier { return domain.CarrierAnPost }

// AcceptsFormat reports whether trackingID is an S10 code, the only format
// An Post issues for tracked items.
func (a *AnPostAdapter) AcceptsFormat(trackingID string) bool {
	return format.UPU.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *AnPostAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *AnPostAdapter) RequiresPostCode() bool { return false }

var anPostStatusTable = map[string]domain.Status{
	"SORTED":             domain.StatusInWarehouse,
	"IN_TRANSIT":         domain.StatusInTransit,
	"ARRIVED_IN_COUNTRY": domain.StatusInTransit,
	"CUSTOMS":            domain.StatusCustoms,
	"DELIVERING":         domain.StatusOutForDelivery,
	"ATTEMPTED":          domain.StatusDeliveryFailure,
	"DELIVERED":          domain.StatusDelivered,
}

// anPostResponse represents the JSON structure of the An Post history API.
type anPostResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	DeliveryStatus string `json:"deliveryStatus"`
	Events         []struct {
		EventDateTime    string `json:"eventDateTime"`
		EventCode        string `json:"eventCode"`
		EventDescription string `json:"eventDescription"`
		Location         string `json:"location"`
	} `json:"events"`
}

// GetParcel fetches the tracking history and normalizes it.
func (a *AnPostAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/track/v3/history/%s", a.baseURL, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp anPostResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Events) == 0 {
		return nil, fmt.Errorf("%w: no tracking events", ports.ErrParcelNonExistent)
	}

	history := make([]domain.HistoryItem, 0, len(resp.Events))
	for _, evt := range resp.Events {
		description := evt.EventDescription
		if description == "" {
			description = evt.EventCode
		}

		ts, _ := time.Parse(anPostTimeLayout, evt.EventDateTime)

		location := evt.Location
		if location == "" {
			location = domain.UnknownLocation
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := anPostStatusTable[resp.DeliveryStatus]
	if !ok {
		status = unknownStatus(domain.CarrierAnPost, resp.DeliveryStatus)
	}

	id := resp.TrackingNumber
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID:      id,
		History: history,
		Status:  status,
	}, nil
}
