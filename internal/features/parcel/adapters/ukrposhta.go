package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/format"
	"parcel-tracker/internal/features/parcel/ports"
)

// UkrposhtaAdapter tracks barcodes through the Ukrposhta status tracking API
// (GET /statuses?barcode={id}, bearer token auth).
type UkrposhtaAdapter struct {
	baseURL string
	token   string
	client  *http.Client
}

const ukrposhtaTimeLayout = "2006-01-02T15:04:05"

// NewUkrposhtaAdapter creates an UkrposhtaAdapter with the given base URL and bearer token.
func NewUkrposhtaAdapter(baseURL, token string, client *http.Client) *UkrposhtaAdapter {
	return &UkrposhtaAdapter{
		baseURL: baseURL,
		token:   token,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *UkrposhtaAdapter) Carrier() domain.Carrier { return domain.CarrierUkrposhta }

// AcceptsFormat reports whether trackingID is an S10 barcode.
func (a *UkrposhtaAdapter) AcceptsFormat(trackingID string) bool {
	return format.UPU.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *UkrposhtaAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *UkrposhtaAdapter) RequiresPostCode() bool { return false }

var ukrposhtaStatusTable = map[int]domain.Status{
	10100: domain.StatusPreadvice,       // shipment registered
	20100: domain.StatusInTransit,       // accepted at post office
	20700: domain.StatusInTransit,       // left sorting center
	30300: domain.StatusCustoms,         // customs processing
	41000: domain.StatusInWarehouse,     // arrived at delivery office
	50100: domain.StatusOutForDelivery,  // handed to courier
	60100: domain.StatusDelivered,       // delivered
	70100: domain.StatusDeliveryFailure, // delivery failed
}

// ukrposhtaStatus represents one element of the statuses array the API returns.
type ukrposhtaStatus struct {
	Barcode   string `json:"barcode"`
	Date      string `json:"date"`
	Event     int    `json:"event"`
	EventName string `json:"eventName"`
	Name      string `json:"name"`
	Country   string `json:"country"`
}

// GetParcel fetches the status list and normalizes it. Ukrposhta reports
// events oldest first, so the last one carries the current status.
func (a *UkrposhtaAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/statuses?barcode=%s", a.baseURL, url.QueryEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	var statuses []ukrposhtaStatus
	if err := fetchJSON(a.client, req, &statuses); err != nil {
		return nil, err
	}

	if len(statuses) == 0 {
		return nil, fmt.Errorf("%w: no statuses for barcode", ports.ErrParcelNonExistent)
	}

	status := domain.StatusUnknown
	history := make([]domain.HistoryItem, 0, len(statuses))
	for _, evt := range statuses {
		description := evt.EventName
		if description == "" {
			description = strconv.Itoa(evt.Event)
		}

		ts, _ := time.Parse(ukrposhtaTimeLayout, evt.Date)

		location := domain.UnknownLocation
		switch {
		case evt.Name != "" && evt.Country != "":
			location = evt.Name + ", " + evt.Country
		case evt.Name != "":
			location = evt.Name
		case evt.Country != "":
			location = evt.Country
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})

		mapped, ok := ukrposhtaStatusTable[evt.Event]
		if !ok {
			mapped = unknownStatus(domain.CarrierUkrposhta, strconv.Itoa(evt.Event))
		}
		status = mapped
	}

	return &domain.Parcel{
		ID:      trackingID,
		History: history,
		Status:  status,
	}, nil
}
