package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const glsMockJSON = `{
	"history": [
		{
			"date": "2024-01-05",
			"time": "14:30:00",
			"evtDscr": "<b>The parcel is in transit.</b>",
			"address": {"city": "Eindhoven", "countryName": "Netherlands", "countryCode": "NL"}
		},
		{
			"date": "2024-01-04",
			"time": "08:15:00",
			"evtDscr": "The parcel has left the parcel center.",
			"address": {"countryName": "Germany", "countryCode": "DE"}
		}
	],
	"progressBar": {"statusInfo": "INTRANSIT"},
	"infos": [
		{"type": "WEIGHT", "name": "Weight", "value": "2.5 kg"},
		{"type": "PRODUCT", "name": "Product", "value": "Parcel"}
	],
	"arrivalTime": {"name": "Estimated delivery", "value": "2024-01-08"}
}`

// TestGLSAdapter_GetParcel verifies markup stripping, the split date and time
// fields, and the arrival time landing on the ETA key while in transit.
func TestGLSAdapter_GetParcel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/en/rstt028/12345678901", r.URL.Path)
		assert.Equal(t, "5611AB", r.URL.Query().Get("postalCode"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(glsMockJSON))
	}))
	defer ts.Close()

	gls := NewGLSAdapter(ts.URL, "en", ts.Client())

	parcel, err := gls.GetParcel(context.Background(), "12345678901", "5611AB")

	require.NoError(t, err)
	require.NotNil(t, parcel)

	assert.Equal(t, "12345678901", parcel.ID)
	assert.Equal(t, domain.StatusInTransit, parcel.Status)
	require.Len(t, parcel.History, 2)

	first := parcel.History[0]
	assert.Equal(t, "The parcel is in transit.", first.Description)
	assert.Equal(t, "Eindhoven, Netherlands", first.Location)
	expectedTime, _ := time.Parse(time.RFC3339, "2024-01-05T14:30:00Z")
	assert.Equal(t, expectedTime.UTC(), first.Timestamp.UTC())

	// No city on the second event, country alone.
	assert.Equal(t, "Germany", parcel.History[1].Location)

	// Weight is projected, the non-delivered arrival time becomes the ETA.
	assert.Equal(t, "2.5 kg", parcel.Properties[domain.PropertyWeight])
	assert.Equal(t, "2024-01-08", parcel.Properties[domain.PropertyETA])
	assert.NotContains(t, parcel.Properties, domain.PropertyDeliveryTime)
}

// TestGLSAdapter_DeliveredArrivalTime verifies that the arrival time switches
// from ETA to delivery time once the parcel is delivered.
func TestGLSAdapter_DeliveredArrivalTime(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"history": [],
			"progressBar": {"statusInfo": "DELIVERED"},
			"infos": [],
			"arrivalTime": {"name": "Delivered at", "value": "2024-01-06 11:42"}
		}`))
	}))
	defer ts.Close()

	gls := NewGLSAdapter(ts.URL, "en", ts.Client())

	parcel, err := gls.GetParcel(context.Background(), "12345678901", "5611AB")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, parcel.Status)
	assert.Equal(t, "2024-01-06 11:42", parcel.Properties[domain.PropertyDeliveryTime])
	assert.NotContains(t, parcel.Properties, domain.PropertyETA)
}

// TestGLSAdapter_PostalCodeRequired verifies that a lookup without a postal
// code fails fast, before any request leaves the process.
func TestGLSAdapter_PostalCodeRequired(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	gls := NewGLSAdapter(ts.URL, "en", ts.Client())

	parcel, err := gls.GetParcel(context.Background(), "12345678901", "")

	assert.Nil(t, parcel)
	assert.ErrorIs(t, err, ports.ErrPostalCodeRequired)
	assert.False(t, called, "no carrier request should be made without a postal code")
}

// TestGLSAdapter_UnknownStatus verifies that an unrecognized progress value
// degrades to the unknown status instead of failing the lookup.
func TestGLSAdapter_UnknownStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"history": [], "progressBar": {"statusInfo": "SOMETHING_NEW"}, "infos": []}`))
	}))
	defer ts.Close()

	gls := NewGLSAdapter(ts.URL, "en", ts.Client())

	parcel, err := gls.GetParcel(context.Background(), "12345678901", "5611AB")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnknown, parcel.Status)
	assert.Nil(t, parcel.Properties)
}

// TestGLSAdapter_AcceptsFormat verifies the accepted tracking-ID shapes.
func TestGLSAdapter_AcceptsFormat(t *testing.T) {
	gls := NewGLSAdapter("http://unused", "en", http.DefaultClient)

	assert.True(t, gls.AcceptsFormat("12345678901"))
	assert.True(t, gls.AcceptsFormat("123456789012"))
	assert.False(t, gls.AcceptsFormat("1234567890"))
	assert.False(t, gls.AcceptsFormat("CB123456789DE"))
	assert.True(t, gls.RequiresPostCode())
}

// TestStripHTML covers the markup shapes carriers embed in descriptions.
func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>Delivered</b>", "Delivered"},
		{"Plain text", "Plain text"},
		{"  <span>Out for delivery</span>  ", "Out for delivery"},
		{"Signed &amp; accepted", "Signed & accepted"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripHTML(tt.in))
	}
}
