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

// SamedayAdapter tracks AWBs through the Sameday public status history
// endpoint (GET /api/public/awb/{id}/status-history).
type SamedayAdapter struct {
	baseURL string
	client  *http.Client
}

const samedayTimeLayout = "2006-01-02T15:04:05"

// NewSamedayAdapter creates a SamedayAdapter with the given base URL.
func NewSamedayAdapter(baseURL string, client *http.Client) *SamedayAdapter {
	return &SamedayAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *SamedayAdapter) Carrier() domain.Carrier { return domain.CarrierSameday }

// AcceptsFormat reports whether trackingID looks like a Sameday AWB number.
func (a *SamedayAdapter) AcceptsFormat(trackingID string) bool {
	return format.Digits10.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *SamedayAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *SamedayAdapter) RequiresPostCode() bool { return false }

var samedayStatusTable = map[int]domain.Status{
	1:  domain.StatusPreadvice,       // AWB issued
	2:  domain.StatusInTransit,       // picked up from sender
	4:  domain.StatusInTransit,       // in transit between hubs
	18: domain.StatusInWarehouse,     // arrived at hub
	33: domain.StatusInWarehouse,     // ready at locker / pickup point
	5:  domain.StatusOutForDelivery,  // out for delivery
	10: domain.StatusDeliveryFailure, // unsuccessful delivery attempt
	11: domain.StatusDeliveryFailure, // return to sender
	9:  domain.StatusDelivered,       // delivered
}

// samedayResponse represents the JSON structure of the status history API.
type samedayResponse struct {
	ExpeditionStatus struct {
		StatusID int    `json:"statusId"`
		Status   string `json:"status"`
	} `json:"expeditionStatus"`
	ExpeditionHistory []struct {
		StatusID   int    `json:"statusId"`
		Status     string `json:"status"`
		County     string `json:"county"`
		Country    string `json:"country"`
		StatusDate string `json:"statusDate"`
	} `json:"expeditionHistory"`
}

// GetParcel fetches the AWB history and normalizes it.
func (a *SamedayAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/api/public/awb/%s/status-history", a.baseURL, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp samedayResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.ExpeditionHistory) == 0 {
		return nil, fmt.Errorf("%w: no status history", ports.ErrParcelNonExistent)
	}

	history := make([]domain.HistoryItem, 0, len(resp.ExpeditionHistory))
	for _, evt := range resp.ExpeditionHistory {
		description := evt.Status
		if description == "" {
			description = strconv.Itoa(evt.StatusID)
		}

		ts, _ := time.Parse(samedayTimeLayout, evt.StatusDate)

		location := domain.UnknownLocation
		switch {
		case evt.County != "" && evt.Country != "":
			location = evt.County + ", " + evt.Country
		case evt.County != "":
			location = evt.County
		case evt.Country != "":
			location = evt.Country
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := samedayStatusTable[resp.ExpeditionStatus.StatusID]
	if !ok {
		status = unknownStatus(domain.CarrierSameday, strconv.Itoa(resp.ExpeditionStatus.StatusID))
	}

	return &domain.Parcel{
		ID:      trackingID,
		History: history,
		Status:  status,
	}, nil
}
