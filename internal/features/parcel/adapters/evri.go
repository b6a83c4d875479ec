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

// EvriAdapter tracks parcels through the Evri (formerly Hermes UK) parcel API
// (GET /api/parcels/{id}).
type EvriAdapter struct {
	baseURL string
	client  *http.Client
}

const evriTimeLayout = "2006-01-02T15:04:05"

// NewEvriAdapter creates an EvriAdapter with the given base URL.
func NewEvriAdapter(baseURL string, client *http.Client) *EvriAdapter {
	return &EvriAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *EvriAdapter) Carrier() domain.Carrier { return domain.CarrierEvri }

// AcceptsFormat reports whether trackingID looks like an Evri barcode.
func (a *EvriAdapter) AcceptsFormat(trackingID string) bool {
	return format.Digits16.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService. Evri uses the postcode to
// verify the recipient but returns the history without it.
func (a *EvriAdapter) AcceptsPostCode() bool { return true }

// RequiresPostCode implements ports.DeliveryService.
func (a *EvriAdapter) RequiresPostCode() bool { return false }

var evriStatusTable = map[string]domain.Status{
	"ORDER_PLACED":       domain.StatusPreadvice,
	"COLLECTED":          domain.StatusInTransit,
	"IN_TRANSIT":         domain.StatusInTransit,
	"AT_LOCAL_DEPOT":     domain.StatusInWarehouse,
	"OUT_FOR_DELIVERY":   domain.StatusOutForDelivery,
	"ATTEMPTED_DELIVERY": domain.StatusDeliveryFailure,
	"DELIVERED":          domain.StatusDelivered,
}

// evriResponse represents the JSON structure of the Evri parcel API.
type evriResponse struct {
	Results []struct {
		ParcelIdentifier string `json:"parcelIdentifier"`
		ParcelStatus     struct {
			ParcelStatusType string `json:"parcelStatusType"`
		} `json:"parcelStatus"`
		TrackingEvents []struct {
			DateTime      string `json:"dateTime"`
			Description   string `json:"description"`
			TrackingStage struct {
				TrackingStageCode string `json:"trackingStageCode"`
			} `json:"trackingStage"`
			TrackingPoint struct {
				Name string `json:"name"`
			} `json:"trackingPoint"`
		} `json:"trackingEvents"`
	} `json:"results"`
}

// GetParcel fetches the parcel and normalizes it.
func (a *EvriAdapter) GetParcel(ctx context.Context, trackingID, postalCode string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/api/parcels/%s", a.baseURL, url.PathEscape(trackingID))
	if postalCode != "" {
		endpoint += "?postcode=" + url.QueryEscape(postalCode)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp evriResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: empty result set", ports.ErrParcelNonExistent)
	}
	result := resp.Results[0]

	history := make([]domain.HistoryItem, 0, len(result.TrackingEvents))
	for _, evt := range result.TrackingEvents {
		description := evt.Description
		if description == "" {
			description = evt.TrackingStage.TrackingStageCode
		}

		ts, _ := time.Parse(evriTimeLayout, evt.DateTime)

		location := evt.TrackingPoint.Name
		if location == "" {
			location = domain.UnknownLocation
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := evriStatusTable[result.ParcelStatus.ParcelStatusType]
	if !ok {
		status = unknownStatus(domain.CarrierEvri, result.ParcelStatus.ParcelStatusType)
	}

	id := result.ParcelIdentifier
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID:      id,
		History: history,
		Status:  status,
	}, nil
}
