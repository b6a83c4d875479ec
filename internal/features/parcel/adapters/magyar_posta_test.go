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

// TestMagyarPostaAdapter_GetParcel verifies normalization including the
// "zip city" location rule.
func TestMagyarPostaAdapter_GetParcel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tracking/v1/parcels/RL123456789HU", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("language"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"parcel": {
				"id": "RL123456789HU",
				"status": "DELIVERY_IN_PROGRESS",
				"events": [
					{"time": "2024-01-04T11:00:00", "code": "ARR", "description": "Arrived at delivery post office", "location": {"city": "Budapest", "zip": "1011"}},
					{"time": "2024-01-05T08:10:00", "code": "OUT", "description": "Out for delivery", "location": {"city": "Budapest"}}
				]
			}
		}`))
	}))
	defer ts.Close()

	mp := NewMagyarPostaAdapter(ts.URL, ts.Client())

	parcel, err := mp.GetParcel(context.Background(), "RL123456789HU", "")

	require.NoError(t, err)
	require.NotNil(t, parcel)

	assert.Equal(t, "RL123456789HU", parcel.ID)
	assert.Equal(t, domain.StatusOutForDelivery, parcel.Status)
	require.Len(t, parcel.History, 2)
	assert.Equal(t, "1011 Budapest", parcel.History[0].Location)
	assert.Equal(t, "Budapest", parcel.History[1].Location)
}

// TestMagyarPostaAdapter_EmptyRecord verifies the not-found path.
func TestMagyarPostaAdapter_EmptyRecord(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"parcel": {}}`))
	}))
	defer ts.Close()

	mp := NewMagyarPostaAdapter(ts.URL, ts.Client())

	_, err := mp.GetParcel(context.Background(), "RL123456789HU", "")

	assert.ErrorIs(t, err, ports.ErrParcelNonExistent)
}
