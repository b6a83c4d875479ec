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

// DHLAdapter tracks shipments through the DHL Unified Tracking API
// (GET /track/shipments, authenticated with the DHL-API-Key header).
type DHLAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// dhlParcelFormat covers DHL Parcel barcodes like "JJD0099...", on top of the
// generic digit-count and UPU formats DHL Express uses.
var dhlParcelFormat = format.New(`^(?:JJD|JVGL|3S|JV|JD)\d*$`)

const dhlTimeLayout = "2006-01-02T15:04:05"

// NewDHLAdapter creates a DHLAdapter with the given base URL and API key.
func NewDHLAdapter(baseURL, apiKey string, client *http.Client) *DHLAdapter {
	return &DHLAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *DHLAdapter) Carrier() domain.Carrier { return domain.CarrierDHL }

// AcceptsFormat reports whether trackingID looks like a DHL number.
func (a *DHLAdapter) AcceptsFormat(trackingID string) bool {
	return format.Any(trackingID, format.Digits11, format.Digits12, format.Digits18, format.UPU) ||
		dhlParcelFormat.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService. DHL lookups never use one.
func (a *DHLAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *DHLAdapter) RequiresPostCode() bool { return false }

// dhlResponse represents the JSON structure of the DHL tracking API.
type dhlResponse struct {
	Shipments []struct {
		ID      string     `json:"id"`
		Service string     `json:"service"`
		Status  dhlEvent   `json:"status"`
		Events  []dhlEvent `json:"events"`
	} `json:"shipments"`
}

type dhlEvent struct {
	Description string `json:"description"`
	Location    *struct {
		Address struct {
			AddressLocality string `json:"addressLocality"`
			PostalCode      string `json:"postalCode"`
		} `json:"address"`
	} `json:"location"`
	Status     string `json:"status"`
	StatusCode string `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
}

// GetParcel fetches the shipment and normalizes it. The parcel ID is DHL's
// canonical shipment ID, which can differ from the user-entered code.
func (a *DHLAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/track/shipments?trackingNumber=%s", a.baseURL, url.QueryEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("DHL-API-Key", a.apiKey)

	var resp dhlResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Shipments) == 0 {
		return nil, fmt.Errorf("%w: empty shipment list", ports.ErrParcelNonExistent)
	}
	shipment := resp.Shipments[0]

	history := make([]domain.HistoryItem, 0, len(shipment.Events))
	for _, evt := range shipment.Events {
		description := evt.Description
		if description == "" {
			description = evt.Status
		}

		ts, _ := time.Parse(dhlTimeLayout, evt.Timestamp)

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    dhlLocation(evt),
		})
	}

	return &domain.Parcel{
		ID:      shipment.ID,
		History: history,
		Status:  a.mapStatus(shipment.Status),
	}, nil
}

// mapStatus maps DHL's coarse phase code to a canonical status, refining the
// ambiguous phases through the finer numeric sub-status.
func (a *DHLAdapter) mapStatus(status dhlEvent) domain.Status {
	switch status.StatusCode {
	case "unknown":
		return domain.StatusUnknown
	case "pre-transit":
		return domain.StatusPreadvice
	case "transit":
		// DHL reuses the "transit" phase for customs holds and depot
		// handling; only the sub-status tells them apart.
		switch status.Status {
		case "447", "506", "449":
			return domain.StatusCustoms
		case "576":
			return domain.StatusInWarehouse
		case "577", "OUT FOR DELIVERY":
			return domain.StatusOutForDelivery
		default:
			return domain.StatusInTransit
		}
	case "failure":
		// Sub-status 103 means the shipment is on hold, not lost.
		if status.Status == "103" {
			return domain.StatusInWarehouse
		}
		return domain.StatusDeliveryFailure
	case "delivered":
		return domain.StatusDelivered
	default:
		return unknownStatus(domain.CarrierDHL, status.StatusCode)
	}
}

func dhlLocation(evt dhlEvent) string {
	if evt.Location == nil {
		return domain.UnknownLocation
	}
	addr := evt.Location.Address
	if addr.PostalCode != "" {
		return addr.PostalCode + " " + addr.AddressLocality
	}
	return addr.AddressLocality
}
