package ports

import (
	"context"
	"errors"

	"parcel-tracker/internal/features/parcel/domain"
)

var (
	// ErrParcelNonExistent is returned when the carrier has no record of the
	// tracking ID, or when the carrier-side call failed in any way (HTTP
	// error, malformed payload, empty result set). Carriers do not reliably
	// distinguish a transient error from a truly unknown tracking number, so
	// callers get one "check the ID or try again" signal.
	ErrParcelNonExistent = errors.New("parcel does not exist")

	// ErrNetwork is returned on transport-level failures, kept separate from
	// ErrParcelNonExistent so callers can tell "check your connection" apart
	// from "this ID doesn't exist".
	ErrNetwork = errors.New("network failure")

	// ErrPostalCodeRequired is returned when an adapter requires a postal
	// code to disambiguate lookups and none was given.
	ErrPostalCodeRequired = errors.New("postal code required")
)

// DeliveryService is the per-carrier tracking capability: format sniffing,
// remote lookup and normalization into the canonical parcel model.
// Implementations hold only immutable configuration and are safe for
// concurrent use.
type DeliveryService interface {
	// Carrier returns the carrier this service adapts.
	Carrier() domain.Carrier
	// AcceptsFormat reports whether the tracking ID's shape is plausible for
	// this carrier. Pure, no I/O.
	AcceptsFormat(trackingID string) bool
	// AcceptsPostCode reports whether the carrier can use a postal code.
	AcceptsPostCode() bool
	// RequiresPostCode reports whether lookups fail without a postal code.
	RequiresPostCode() bool
	// GetParcel fetches and normalizes the parcel. postalCode may be empty
	// for carriers that do not use one.
	GetParcel(ctx context.Context, trackingID, postalCode string) (*domain.Parcel, error)
}
