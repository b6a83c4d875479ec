package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUkrposhtaAdapter_GetParcel verifies bearer auth and the last-event
// status rule.
func TestUkrposhtaAdapter_GetParcel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/statuses", r.URL.Path)
		assert.Equal(t, "RA000000000UA", r.URL.Query().Get("barcode"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"barcode": "RA000000000UA", "date": "2024-01-03T10:00:00", "event": 20100, "eventName": "Прийнято у відділенні", "name": "Львів 79000", "country": "UA"},
			{"barcode": "RA000000000UA", "date": "2024-01-05T09:15:00", "event": 41000, "eventName": "Прибуло у відділення", "name": "Київ 01001", "country": "UA"}
		]`))
	}))
	defer ts.Close()

	ukr := NewUkrposhtaAdapter(ts.URL, "test-token", ts.Client())

	parcel, err := ukr.GetParcel(context.Background(), "RA000000000UA", "")

	require.NoError(t, err)
	require.NotNil(t, parcel)

	assert.Equal(t, "RA000000000UA", parcel.ID)
	assert.Equal(t, domain.StatusInWarehouse, parcel.Status)
	require.Len(t, parcel.History, 2)
	assert.Equal(t, "Львів 79000, UA", parcel.History[0].Location)
}

// TestUkrposhtaAdapter_EmptyStatuses verifies the not-found path.
func TestUkrposhtaAdapter_EmptyStatuses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	ukr := NewUkrposhtaAdapter(ts.URL, "token", ts.Client())

	_, err := ukr.GetParcel(context.Background(), "RA000000000UA", "")

	assert.ErrorIs(t, err, ports.ErrParcelNonExistent)
}

// TestUkrposhtaAdapter_AcceptsFormat verifies the S10 format.
func TestUkrposhtaAdapter_AcceptsFormat(t *testing.T) {
	ukr := NewUkrposhtaAdapter("http://unused", "token", http.DefaultClient)

	assert.True(t, ukr.AcceptsFormat("RA000000000UA"))
	assert.False(t, ukr.AcceptsFormat("59000000000001"))
}
