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

// TestPocztaPolskaAdapter_GetParcel verifies normalization, including the
// customs status code.
func TestPocztaPolskaAdapter_GetParcel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sledzenie/api/tracking/00123456789012345678", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"mailInfo": {
				"number": "00123456789012345678",
				"mailStatus": "P_OCL",
				"events": [
					{"code": "P_NAD", "name": "Nadanie przesyłki", "time": "2024-01-03 11:20:00", "postOffice": {"name": "UP Warszawa 1"}},
					{"code": "P_OCL", "name": "Odprawa celna", "time": "2024-01-05 09:00:00", "postOffice": {"name": ""}}
				]
			}
		}`))
	}))
	defer ts.Close()

	pp := NewPocztaPolskaAdapter(ts.URL, ts.Client())

	parcel, err := pp.GetParcel(context.Background(), "00123456789012345678", "")

	require.NoError(t, err)
	require.NotNil(t, parcel)

	assert.Equal(t, "00123456789012345678", parcel.ID)
	assert.Equal(t, domain.StatusCustoms, parcel.Status)
	require.Len(t, parcel.History, 2)
	assert.Equal(t, "UP Warszawa 1", parcel.History[0].Location)
	assert.Equal(t, domain.UnknownLocation, parcel.History[1].Location)
}

// TestPocztaPolskaAdapter_NoEvents verifies the not-found path.
func TestPocztaPolskaAdapter_NoEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"mailInfo": {"number": "", "mailStatus": "", "events": []}}`))
	}))
	defer ts.Close()

	pp := NewPocztaPolskaAdapter(ts.URL, ts.Client())

	_, err := pp.GetParcel(context.Background(), "00123456789012345678", "")

	assert.ErrorIs(t, err, ports.ErrParcelNonExistent)
}

// TestPocztaPolskaAdapter_AcceptsFormat verifies the 00-prefixed domestic
// format next to S10.
func TestPocztaPolskaAdapter_AcceptsFormat(t *testing.T) {
	pp := NewPocztaPolskaAdapter("http://unused", http.DefaultClient)

	assert.True(t, pp.AcceptsFormat("00123456789012345678"))
	assert.True(t, pp.AcceptsFormat("CP123456789PL"))
	assert.False(t, pp.AcceptsFormat("10123456789012345678")) // wrong prefix
	assert.False(t, pp.AcceptsFormat("0012345678901234567"))  // 19 digits
}
