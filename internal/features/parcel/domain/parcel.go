package domain

import "time"

// Status represents the canonical, carrier-independent delivery state of a parcel.
type Status string

const (
	// StatusUnknown indicates the carrier reported a state this system does not recognize.
	StatusUnknown Status = "UNKNOWN"
	// StatusPreadvice indicates the carrier knows about the parcel but has not received it yet.
	StatusPreadvice Status = "PREADVICE"
	// StatusInTransit indicates the parcel is moving through the carrier network.
	StatusInTransit Status = "IN_TRANSIT"
	// StatusCustoms indicates the parcel is held at or being processed by customs.
	StatusCustoms Status = "CUSTOMS"
	// StatusInWarehouse indicates the parcel is being processed at a depot or pickup point.
	StatusInWarehouse Status = "IN_WAREHOUSE"
	// StatusOutForDelivery indicates the parcel is with a courier on its final leg.
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	// StatusDeliveryFailure indicates a failed or refused delivery attempt.
	StatusDeliveryFailure Status = "DELIVERY_FAILURE"
	// StatusDelivered indicates the parcel reached its recipient.
	StatusDelivered Status = "DELIVERED"
)

// PropertyKey identifies an optional display property attached to a parcel.
// The key set is fixed; adapters never invent arbitrary keys.
type PropertyKey string

const (
	// PropertyWeight is the parcel weight as reported by the carrier.
	PropertyWeight PropertyKey = "weight"
	// PropertyETA is the estimated time of arrival for an undelivered parcel.
	PropertyETA PropertyKey = "eta"
	// PropertyDeliveryTime is the actual delivery time of a delivered parcel.
	PropertyDeliveryTime PropertyKey = "delivery_time"
	// PropertyDimensions is the parcel dimensions as reported by the carrier.
	PropertyDimensions PropertyKey = "dimensions"
	// PropertyServiceType is the carrier product the parcel was shipped with.
	PropertyServiceType PropertyKey = "service_type"
)

// UnknownLocation is emitted when a carrier event carries no location data.
const UnknownLocation = "Unknown location"

// HistoryItem represents a single tracking event reported by the carrier.
type HistoryItem struct {
	// Description is the event text, falling back to the raw status code when
	// the carrier supplies no free-text description.
	Description string `json:"description"`
	// Timestamp is the event time as reported by the carrier (carrier-local).
	Timestamp time.Time `json:"timestamp"`
	// Location is a human-readable place string, UnknownLocation if absent.
	Location string `json:"location"`
}

// Parcel is the normalized result of one tracking lookup. Events keep the
// order the carrier reported them in; nothing re-sorts the history.
type Parcel struct {
	// ID is the carrier's canonical shipment ID, which may differ from the
	// tracking code the user entered.
	ID string `json:"id"`
	// History contains the tracking events for the parcel.
	History []HistoryItem `json:"history"`
	// Status is the canonical delivery state.
	Status Status `json:"status"`
	// Properties holds optional extras such as weight or ETA.
	Properties map[PropertyKey]string `json:"properties,omitempty"`
}
