package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/format"
	"parcel-tracker/internal/features/parcel/ports"
)

// NovaPoshtaAdapter tracks documents through the Nova Poshta JSON-RPC API.
// Unlike the REST carriers this one POSTs a method envelope with the API key
// in the body.
type NovaPoshtaAdapter struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// Nova Poshta document numbers are 14 digits starting with 59 or 20.
var novaPoshtaFormat = format.New(`^(?:59|20)\d{12}$`)

// Layout: "05.01.2024 14:30:25"
const novaPoshtaTimeLayout = "02.01.2006 15:04:05"

// NewNovaPoshtaAdapter creates a NovaPoshtaAdapter for the given endpoint and API key.
func NewNovaPoshtaAdapter(endpoint, apiKey string, client *http.Client) *NovaPoshtaAdapter {
	return &NovaPoshtaAdapter{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
	}
}

// Carrier implements ports.DeliveryService.
func (a *NovaPoshtaAdapter) Carrier() domain.Carrier { return domain.CarrierNovaPoshta }

// AcceptsFormat reports whether trackingID looks like a Nova Poshta document number.
func (a *NovaPoshtaAdapter) AcceptsFormat(trackingID string) bool {
	return novaPoshtaFormat.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *NovaPoshtaAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *NovaPoshtaAdapter) RequiresPostCode() bool { return false }

var novaPoshtaStatusTable = map[string]domain.Status{
	"1":   domain.StatusPreadvice,       // document created
	"4":   domain.StatusInTransit,       // in sender's city
	"41":  domain.StatusInTransit,       // in sender's city (local)
	"5":   domain.StatusInTransit,       // heading to recipient's city
	"6":   domain.StatusInTransit,       // in recipient's city
	"7":   domain.StatusInWarehouse,     // arrived at warehouse
	"8":   domain.StatusInWarehouse,     // arrived at postomat
	"101": domain.StatusOutForDelivery,  // on the way to the recipient
	"9":   domain.StatusDelivered,       // received
	"10":  domain.StatusDelivered,       // received, cash on delivery pending
	"11":  domain.StatusDelivered,       // received, cash on delivery collected
	"102": domain.StatusDeliveryFailure, // refused by recipient
	"103": domain.StatusDeliveryFailure, // refusal, return started
	"108": domain.StatusDeliveryFailure, // returned to sender
}

// novaPoshtaRequest is the JSON-RPC envelope of the Nova Poshta API.
type novaPoshtaRequest struct {
	APIKey           string `json:"apiKey"`
	ModelName        string `json:"modelName"`
	CalledMethod     string `json:"calledMethod"`
	MethodProperties struct {
		Documents []novaPoshtaDocument `json:"Documents"`
	} `json:"methodProperties"`
}

type novaPoshtaDocument struct {
	DocumentNumber string `json:"DocumentNumber"`
}

// novaPoshtaResponse represents the getStatusDocuments reply. The API returns
// only the current snapshot of a document, not its full event timeline.
type novaPoshtaResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		Number             string `json:"Number"`
		Status             string `json:"Status"`
		StatusCode         string `json:"StatusCode"`
		CityRecipient      string `json:"CityRecipient"`
		WarehouseRecipient string `json:"WarehouseRecipient"`
		DateScan           string `json:"TrackingUpdateDate"`
	} `json:"data"`
	Errors []string `json:"errors"`
}

// GetParcel fetches the document status and normalizes it into a parcel with
// a single-item history built from the current snapshot.
func (a *NovaPoshtaAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	payload := novaPoshtaRequest{
		APIKey:       a.apiKey,
		ModelName:    "TrackingDocument",
		CalledMethod: "getStatusDocuments",
	}
	payload.MethodProperties.Documents = []novaPoshtaDocument{{DocumentNumber: trackingID}}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp novaPoshtaResponse
	if err := fetchJSON(a.client, req, &resp); err != nil {
		return nil, err
	}

	if !resp.Success || len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: carrier reported no documents", ports.ErrParcelNonExistent)
	}
	doc := resp.Data[0]

	// StatusCode 3 is Nova Poshta's own "number not found".
	if doc.StatusCode == "3" {
		return nil, fmt.Errorf("%w: document number not found", ports.ErrParcelNonExistent)
	}

	status, ok := novaPoshtaStatusTable[doc.StatusCode]
	if !ok {
		status = unknownStatus(domain.CarrierNovaPoshta, doc.StatusCode)
	}

	ts, _ := time.Parse(novaPoshtaTimeLayout, doc.DateScan)

	location := domain.UnknownLocation
	switch {
	case doc.CityRecipient != "" && doc.WarehouseRecipient != "":
		location = doc.CityRecipient + ", " + doc.WarehouseRecipient
	case doc.CityRecipient != "":
		location = doc.CityRecipient
	}

	description := doc.Status
	if description == "" {
		description = doc.StatusCode
	}

	id := doc.Number
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID: id,
		History: []domain.HistoryItem{{
			Description: description,
			Timestamp:   ts,
			Location:    location,
		}},
		Status: status,
	}, nil
}
