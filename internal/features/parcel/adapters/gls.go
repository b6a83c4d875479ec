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

// GLSAdapter tracks parcels through the GLS Group extended tracking endpoint
// (GET /{locale}/rstt028/{id}). GLS needs the recipient's postal code to
// disambiguate the lookup.
type GLSAdapter struct {
	baseURL string
	locale  string
	client  *http.Client
}

const glsTimeLayout = "2006-01-02T15:04:05"

// NewGLSAdapter creates a GLSAdapter with the given base URL and locale.
func NewGLSAdapter(baseURL, locale string, client *http.Client) *GLSAdapter {
	return &GLSAdapter{
		baseURL: baseURL,
		locale:  locale,
		client:  client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *GLSAdapter) Carrier() domain.Carrier { return domain.CarrierGLS }

// AcceptsFormat reports whether trackingID looks like a GLS number. The
// generic 11 and 12 digit formats overlap with DHL on purpose; format alone
// cannot settle ownership.
func (a *GLSAdapter) AcceptsFormat(trackingID string) bool {
	return format.Any(trackingID, format.Digits11, format.Digits12)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *GLSAdapter) AcceptsPostCode() bool { return true }

// RequiresPostCode implements ports.DeliveryService.
func (a *GLSAdapter) RequiresPostCode() bool { return true }

// glsResponse represents the JSON structure of the GLS tracking API.
type glsResponse struct {
	History     []glsHistoryItem  `json:"history"`
	ProgressBar glsProgress       `json:"progressBar"`
	Infos       []glsTypedProperty `json:"infos"`
	ArrivalTime *glsProperty      `json:"arrivalTime"`
}

type glsHistoryItem struct {
	Time    string `json:"time"`
	Date    string `json:"date"`
	EvtDscr string `json:"evtDscr"`
	Address struct {
		City        string `json:"city"`
		CountryName string `json:"countryName"`
		CountryCode string `json:"countryCode"`
	} `json:"address"`
}

type glsTypedProperty struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type glsProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type glsProgress struct {
	StatusInfo string `json:"statusInfo"`
}

var glsStatusTable = map[string]domain.Status{
	"PREADVICE":   domain.StatusPreadvice,
	"INTRANSIT":   domain.StatusInTransit,
	"INWAREHOUSE": domain.StatusInWarehouse,
	"INDELIVERY":  domain.StatusOutForDelivery,
	"DELIVERED":   domain.StatusDelivered,
}

// GetParcel fetches the parcel and normalizes it.
func (a *GLSAdapter) GetParcel(ctx context.Context, trackingID, postalCode string) (*domain.Parcel, error) {
	if postalCode == "" {
		return nil, ports.ErrPostalCodeRequired
	}

	endpoint := fmt.Sprintf("%s/%s/rstt028/%s?postalCode=%s",
		a.baseURL, a.locale, url.PathEscape(trackingID), url.QueryEscape(postalCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp glsResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	history := make([]domain.HistoryItem, 0, len(resp.History))
	for _, item := range resp.History {
		// GLS reports the date and time as two separate fields, joined here
		// before parsing.
		ts, _ := time.Parse(glsTimeLayout, item.Date+"T"+item.Time)

		location := item.Address.CountryName
		if item.Address.City != "" {
			location = item.Address.City + ", " + item.Address.CountryName
		}

		history = append(history, domain.HistoryItem{
			Description: stripHTML(item.EvtDscr),
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := glsStatusTable[resp.ProgressBar.StatusInfo]
	if !ok {
		status = unknownStatus(domain.CarrierGLS, resp.ProgressBar.StatusInfo)
	}

	return &domain.Parcel{
		ID:         trackingID,
		History:    history,
		Status:     status,
		Properties: a.mapProperties(resp, status),
	}, nil
}

// mapProperties projects GLS's typed side-channel metadata onto the fixed
// property key set. The arrival time means "delivered at" once the parcel is
// delivered and "expected at" before that.
func (a *GLSAdapter) mapProperties(resp glsResponse, status domain.Status) map[domain.PropertyKey]string {
	properties := make(map[domain.PropertyKey]string)

	for _, info := range resp.Infos {
		if info.Type == "WEIGHT" {
			properties[domain.PropertyWeight] = info.Value
		}
	}

	if resp.ArrivalTime != nil {
		key := domain.PropertyETA
		if status == domain.StatusDelivered {
			key = domain.PropertyDeliveryTime
		}
		properties[key] = resp.ArrivalTime.Value
	}

	if len(properties) == 0 {
		return nil
	}
	return properties
}
