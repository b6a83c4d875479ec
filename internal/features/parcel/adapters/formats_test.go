package adapter

import (
	"net/http"
	"testing"

	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAdapters() []ports.DeliveryService {
	client := http.DefaultClient
	return []ports.DeliveryService{
		NewPacketaAdapter("http://unused", "key", client),
		NewNovaPoshtaAdapter("http://unused", "key", client),
		NewPocztaPolskaAdapter("http://unused", client),
		NewMagyarPostaAdapter("http://unused", client),
		NewAnPostAdapter("http://unused", client),
		NewUkrposhtaAdapter("http://unused", "token", client),
		NewDHLAdapter("http://unused", "key", client),
		NewGLSAdapter("http://unused", "en", client),
		NewDPDAdapter("http://unused", client),
		NewEvriAdapter("http://unused", client),
		NewSamedayAdapter("http://unused", client),
		NewPosteItalianeAdapter("http://unused/%s", proxy.Settings{}),
	}
}

// TestAdapters_CoverEveryCarrier verifies that exactly one adapter exists per
// declared carrier.
func TestAdapters_CoverEveryCarrier(t *testing.T) {
	adapters := allAdapters()
	require.Len(t, adapters, len(domain.Carriers()))

	seen := make(map[domain.Carrier]bool)
	for _, a := range adapters {
		assert.False(t, seen[a.Carrier()], "duplicate adapter for %s", a.Carrier())
		seen[a.Carrier()] = true
	}
	for _, carrier := range domain.Carriers() {
		assert.True(t, seen[carrier], "no adapter registered for %s", carrier)
	}
}

// TestAdapters_FormatDetection walks representative tracking IDs through every
// adapter and checks which carriers claim them. Overlaps are intentional where
// carriers share generic digit-count formats.
func TestAdapters_FormatDetection(t *testing.T) {
	tests := []struct {
		trackingID string
		accepted   []domain.Carrier
	}{
		{"Z1234567890", []domain.Carrier{domain.CarrierPacketa}},
		{"59000000000001", []domain.Carrier{domain.CarrierNovaPoshta, domain.CarrierDPD, domain.CarrierPosteItaliane}},
		{"00123456789012345678", []domain.Carrier{domain.CarrierPocztaPolska}},
		{"12345678901", []domain.Carrier{domain.CarrierDHL, domain.CarrierGLS}},
		{"123456789012345678", []domain.Carrier{domain.CarrierDHL}},
		{"JJD0099999999", []domain.Carrier{domain.CarrierDHL}},
		{"1234567890123456", []domain.Carrier{domain.CarrierEvri}},
		{"1234567890", []domain.Carrier{domain.CarrierSameday}},
		{"CB123456789DE", []domain.Carrier{
			domain.CarrierPocztaPolska, domain.CarrierMagyarPosta, domain.CarrierAnPost,
			domain.CarrierUkrposhta, domain.CarrierDHL, domain.CarrierPosteItaliane,
		}},
		{"not-a-tracking-id", nil},
		{"", nil},
	}

	adapters := allAdapters()
	for _, tt := range tests {
		t.Run(tt.trackingID, func(t *testing.T) {
			var accepted []domain.Carrier
			for _, a := range adapters {
				if a.AcceptsFormat(tt.trackingID) {
					accepted = append(accepted, a.Carrier())
				}
			}
			assert.Equal(t, tt.accepted, accepted)
		})
	}
}

// TestAdapters_PostCodeFlags verifies the postal-code contract: anything that
// requires a code must also accept one.
func TestAdapters_PostCodeFlags(t *testing.T) {
	for _, a := range allAdapters() {
		if a.RequiresPostCode() {
			assert.True(t, a.AcceptsPostCode(), "%s requires a post code but does not accept one", a.Carrier())
		}
	}
}
