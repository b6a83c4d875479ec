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

// PocztaPolskaAdapter tracks mail through the Poczta Polska tracking API
// (GET /sledzenie/api/tracking/{id}).
type PocztaPolskaAdapter struct {
	baseURL string
	client  *http.Client
}

// Domestic Poczta Polska numbers are 20 digits starting with "00".
var pocztaPolskaFormat = format.New(`^00\d{18}$`)

// Layout: "2024-01-05 14:30:00"
const pocztaPolskaTimeLayout = "2006-01-02 15:04:05"

// NewPocztaPolskaAdapter creates a PocztaPolskaAdapter with the given base URL.
func NewPocztaPolskaAdapter(baseURL string, client *http.Client) *PocztaPolskaAdapter {
	return &PocztaPolskaAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *PocztaPolskaAdapter) Carrier() domain.Carrier { return domain.CarrierPocztaPolska }

// AcceptsFormat reports whether trackingID looks like a Poczta Polska number.
func (a *PocztaPolskaAdapter) AcceptsFormat(trackingID string) bool {
	return pocztaPolskaFormat.Accepts(trackingID) || format.UPU.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *PocztaPolskaAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *PocztaPolskaAdapter) RequiresPostCode() bool { return false }

var pocztaPolskaStatusTable = map[string]domain.Status{
	"P_REJ": domain.StatusPreadvice,       // shipment registered electronically
	"P_NAD": domain.StatusInTransit,       // posted
	"P_WZL": domain.StatusInTransit,       // left sorting facility
	"P_ND":  domain.StatusInWarehouse,     // arrived at delivery office
	"P_OCL": domain.StatusCustoms,         // customs clearance
	"P_WDM": domain.StatusOutForDelivery,  // handed to postman
	"P_AD":  domain.StatusDeliveryFailure, // unsuccessful delivery attempt
	"P_D":   domain.StatusDelivered,       // delivered
}

// pocztaPolskaResponse represents the JSON structure of the tracking API.
type pocztaPolskaResponse struct {
	MailInfo struct {
		Number     string `json:"number"`
		MailStatus string `json:"mailStatus"`
		Events     []struct {
			Code       string `json:"code"`
			Name       string `json:"name"`
			Time       string `json:"time"`
			PostOffice struct {
				Name string `json:"name"`
			} `json:"postOffice"`
		} `json:"events"`
	} `json:"mailInfo"`
}

// GetParcel fetches the mail history and normalizes it.
func (a *PocztaPolskaAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	endpoint := fmt.Sprintf("%s/sledzenie/api/tracking/%s", a.baseURL, url.PathEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp pocztaPolskaResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	info := resp.MailInfo
	if len(info.Events) == 0 {
		return nil, fmt.Errorf("%w: no tracking events", ports.ErrParcelNonExistent)
	}

	history := make([]domain.HistoryItem, 0, len(info.Events))
	for _, evt := range info.Events {
		description := evt.Name
		if description == "" {
			description = evt.Code
		}

		ts, _ := time.Parse(pocztaPolskaTimeLayout, evt.Time)

		location := evt.PostOffice.Name
		if location == "" {
			location = domain.UnknownLocation
		}

		history = append(history, domain.HistoryItem{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := pocztaPolskaStatusTable[info.MailStatus]
	if !ok {
		status = unknownStatus(domain.CarrierPocztaPolska, info.MailStatus)
	}

	id := info.Number
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID:      id,
		History: history,
		Status:  status,
	}, nil
}
