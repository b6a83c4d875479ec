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

// DPDAdapter tracks parcels through DPD's parcel life cycle endpoint
// (GET /rest/plc/{locale}/{id}).
type DPDAdapter struct {
	baseURL string
	client  *http.Client
}

// Layout: "08.01.2024, 15:04"
const dpdTimeLayout = "02.01.2006, 15:04"

// NewDPDAdapter creates a DPDAdapter with the given base URL.
func NewDPDAdapter(baseURL string, client *http.Client) *DPDAdapter {
	return &DPDAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *DPDAdapter) Carrier() domain.Carrier { return domain.CarrierDPD }

// AcceptsFormat reports whether trackingID looks like a DPD parcel label number.
func (a *DPDAdapter) AcceptsFormat(trackingID string) bool {
	return format.Digits14.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService. DPD accepts a postal code
// to unlock recipient details but does not need one for the history.
func (a *DPDAdapter) AcceptsPostCode() bool { return true }

// RequiresPostCode implements ports.DeliveryService.
func (a *DPDAdapter) RequiresPostCode() bool { return false }

var dpdStatusTable = map[string]domain.Status{
	"ACCEPTED":          domain.StatusPreadvice,
	"AT_SENDING_DEPOT":  domain.StatusInWarehouse,
	"ON_THE_ROAD":       domain.StatusInTransit,
	"CUSTOMS_CLEARANCE": domain.StatusCustoms,
	"AT_DELIVERY_DEPOT": domain.StatusInWarehouse,
	"OUT_FOR_DELIVERY":  domain.StatusOutForDelivery,
	"DELIVERY_FAILED":   domain.StatusDeliveryFailure,
	"DELIVERED":         domain.StatusDelivered,
}

// dpdResponse represents the JSON structure of the DPD life cycle API.
type dpdResponse struct {
	ParcelLifeCycle struct {
		ShipmentInfo struct {
			ParcelLabelNumber string `json:"parcelLabelNumber"`
		} `json:"shipmentInfo"`
		StatusInfo []struct {
			Status          string `json:"status"`
			Description     string `json:"description"`
			Location        string `json:"location"`
			Date            string `json:"date"`
			StatusReached   bool   `json:"statusHasBeenReached"`
			IsCurrentStatus bool   `json:"isCurrentStatus"`
		} `json:"statusInfo"`
	} `json:"parcellifecycleResponse"`
}

// GetParcel fetches the parcel life cycle and normalizes it. Only stages the
// parcel has actually reached become history items.
func (a *DPDAdapter) GetParcel(ctx context.Context, trackingID, postalCode string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/rest/plc/en_US/%s", a.baseURL, url.PathEscape(trackingID))
	if postalCode != "" {
		endpoint += "?postalCode=" + url.QueryEscape(postalCode)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp dpdResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	lifeCycle := resp.ParcelLifeCycle
	if len(lifeCycle.StatusInfo) == 0 {
		return nil, fmt.Errorf("%w: no life cycle data", ports.ErrParcelNonExistent)
	}

	status := domain.StatusUnknown
	var history []domain.HistoryItem
	for _, stage := range lifeCycle.StatusInfo {
		if !stage.StatusReached {
			continue
		}

		description := stage.Description
		if description == "" {
			description = stage.Status
		}

		ts, _ := time.Parse(dpdTimeLayout, stage.Date)

		location := stage.Location
		if location == "" {
			location = domain.UnknownLocation
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})

		if stage.IsCurrentStatus {
			mapped, ok := dpdStatusTable[stage.Status]
			if !ok {
				mapped = unknownStatus(domain.CarrierDPD, stage.Status)
			}
			status = mapped
		}
	}

	id := lifeCycle.ShipmentInfo.ParcelLabelNumber
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID:      id,
		History: history,
		Status:  status,
	}, nil
}
