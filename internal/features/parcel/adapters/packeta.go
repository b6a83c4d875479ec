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

// PacketaAdapter tracks packets through the Packeta (Zasilkovna) tracking API
// (GET /v5/{apiKey}/tracking/{id}).
type PacketaAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Packeta barcodes are "Z" followed by ten digits.
var packetaFormat = format.New(`^Z\d{10}$`)

const packetaTimeLayout = "2006-01-02T15:04:05"

// NewPacketaAdapter creates a PacketaAdapter with the given base URL and API key.
func NewPacketaAdapter(baseURL, apiKey string, client *http.Client) *PacketaAdapter {
	return &PacketaAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *PacketaAdapter) Carrier() domain.Carrier { return domain.CarrierPacketa }

// AcceptsFormat reports whether trackingID looks like a Packeta barcode.
func (a *PacketaAdapter) AcceptsFormat(trackingID string) bool {
	return packetaFormat.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *PacketaAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *PacketaAdapter) RequiresPostCode() bool { return false }

var packetaStatusTable = map[int]domain.Status{
	1: domain.StatusPreadvice,       // shipment data received
	2: domain.StatusInTransit,       // accepted at depot
	3: domain.StatusInTransit,       // on the way
	4: domain.StatusInWarehouse,     // ready at pickup point
	5: domain.StatusOutForDelivery,  // handed to courier
	7: domain.StatusDelivered,       // picked up / delivered
	9: domain.StatusDeliveryFailure, // returning to sender
}

// packetaResponse represents the JSON structure of the Packeta tracking API.
type packetaResponse struct {
	PacketTrack struct {
		Records []struct {
			DateTime   string `json:"dateTime"`
			StatusCode int    `json:"statusCode"`
			StatusText string `json:"statusText"`
			Branch     struct {
				Name string `json:"name"`
				City string `json:"city"`
			} `json:"branch"`
		} `json:"records"`
	} `json:"packetTrack"`
}

// GetParcel fetches the packet history and normalizes it. Packeta reports
// events oldest first, so the last record carries the current status.
func (a *PacketaAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/v5/%s/tracking/%s", a.baseURL, a.apiKey, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp packetaResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	records := resp.PacketTrack.Records
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no tracking records", ports.ErrParcelNonExistent)
	}

	status := domain.StatusUnknown
	history := make([]domain.HistoryItem, 0, len(records))
	for _, record := range records {
		description := record.StatusText
		if description == "" {
			description = strconv.Itoa(record.StatusCode)
		}

		ts, _ := time.Parse(packetaTimeLayout, record.DateTime)

		location := domain.UnknownLocation
		if record.Branch.City != "" {
			location = record.Branch.City
		} else if record.Branch.Name != "" {
			location = record.Branch.Name
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})

		mapped, ok := packetaStatusTable[record.StatusCode]
		if !ok {
			mapped = unknownStatus(domain.CarrierPacketa, strconv.Itoa(record.StatusCode))
		}
		status = mapped
	}

	return &domain.Parcel{
		ID:      trackingID,
		History: history,
		Status:  status,
	}, nil
}
