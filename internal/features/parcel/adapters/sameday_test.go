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

// TestSamedayAdapter_GetParcel verifies that the expedition status, not the
// last history entry, decides the parcel status.
func TestSamedayAdapter_GetParcel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/awb/1234567890/status-history", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"expeditionStatus": {"statusId": 5, "status": "In livrare"},
			"expeditionHistory": [
				{"statusId": 2, "status": "Ridicat de la expeditor", "county": "Cluj", "country": "Romania", "statusDate": "2024-01-04T12:00:00"},
				{"statusId": 5, "status": "In livrare", "county": "Bucuresti", "country": "", "statusDate": "2024-01-05T08:30:00"}
			]
		}`))
	}))
	defer ts.Close()

	sameday := NewSamedayAdapter(ts.URL, ts.Client())

	parcel, err := sameday.GetParcel(context.Background(), "1234567890", "")

	require.NoError(t, err)
	require.NotNil(t, parcel)

	assert.Equal(t, "1234567890", parcel.ID)
	assert.Equal(t, domain.StatusOutForDelivery, parcel.Status)
	require.Len(t, parcel.History, 2)
	assert.Equal(t, "Cluj, Romania", parcel.History[0].Location)
	assert.Equal(t, "Bucuresti", parcel.History[1].Location)
}

// TestSamedayAdapter_NoHistory verifies the not-found path.
func TestSamedayAdapter_NoHistory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"expeditionStatus": {"statusId": 0}, "expeditionHistory": []}`))
	}))
	defer ts.Close()

	sameday := NewSamedayAdapter(ts.URL, ts.Client())

	_, err := sameday.GetParcel(context.Background(), "1234567890", "")

	assert.ErrorIs(t, err, ports.ErrParcelNonExistent)
}
