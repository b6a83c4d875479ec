package adapter

import (
	"testing"

	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPosteItalianeAdapter_ParseResponse verifies the normalization of a
// captured backend body without driving a browser.
func TestPosteItalianeAdapter_ParseResponse(t *testing.T) {
	poste := NewPosteItalianeAdapter("http://unused/%s", proxy.Settings{})

	body := []byte(`{
		"codiceSpedizione": "123456789012",
		"stato": "IN CONSEGNA",
		"listaMovimenti": [
			{"dataOra": "2024-01-03T08:12:00", "statoLavorazione": "Accettata", "luogo": "MILANO"},
			{"dataOra": "2024-01-04T16:40:00", "statoLavorazione": "In transito", "luogo": ""},
			{"dataOra": "2024-01-05T07:55:00", "statoLavorazione": "In consegna", "luogo": "ROMA"}
		]
	}`)

	parcel, err := poste.parseResponse(body, "123456789012")

	require.NoError(t, err)
	require.NotNil(t, parcel)

	assert.Equal(t, "123456789012", parcel.ID)
	assert.Equal(t, domain.StatusOutForDelivery, parcel.Status)
	require.Len(t, parcel.History, 3)

	assert.Equal(t, "Accettata", parcel.History[0].Description)
	assert.Equal(t, "MILANO", parcel.History[0].Location)
	assert.Equal(t, domain.UnknownLocation, parcel.History[1].Location)
}

// TestPosteItalianeAdapter_ParseResponse_NoMovements verifies the empty
// shipment path.
func TestPosteItalianeAdapter_ParseResponse_NoMovements(t *testing.T) {
	poste := NewPosteItalianeAdapter("http://unused/%s", proxy.Settings{})

	_, err := poste.parseResponse([]byte(`{"codiceSpedizione": "", "stato": "", "listaMovimenti": []}`), "123456789012")

	assert.ErrorIs(t, err, ports.ErrParcelNonExistent)
}

// TestPosteItalianeAdapter_ParseResponse_Garbage verifies that a non-JSON body
// maps to the not-found error.
func TestPosteItalianeAdapter_ParseResponse_Garbage(t *testing.T) {
	poste := NewPosteItalianeAdapter("http://unused/%s", proxy.Settings{})

	_, err := poste.parseResponse([]byte(`<html>maintenance</html>`), "123456789012")

	assert.ErrorIs(t, err, ports.ErrParcelNonExistent)
}

// TestPosteItalianeAdapter_ParseResponse_UnknownStatus verifies that a new
// carrier status string degrades to unknown.
func TestPosteItalianeAdapter_ParseResponse_UnknownStatus(t *testing.T) {
	poste := NewPosteItalianeAdapter("http://unused/%s", proxy.Settings{})

	parcel, err := poste.parseResponse([]byte(`{
		"codiceSpedizione": "123456789012",
		"stato": "STATO NUOVO",
		"listaMovimenti": [{"dataOra": "2024-01-03T08:12:00", "statoLavorazione": "Boh", "luogo": "BARI"}]
	}`), "123456789012")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnknown, parcel.Status)
}

// TestPosteItalianeAdapter_AcceptsFormat verifies the accepted shapes.
func TestPosteItalianeAdapter_AcceptsFormat(t *testing.T) {
	poste := NewPosteItalianeAdapter("http://unused/%s", proxy.Settings{})

	assert.True(t, poste.AcceptsFormat("123456789012"))   // 12 digits
	assert.True(t, poste.AcceptsFormat("12345678901234")) // 14 digits
	assert.True(t, poste.AcceptsFormat("RA123456789IT"))  // UPU S10
	assert.False(t, poste.AcceptsFormat("12345678901"))   // 11 digits
	assert.False(t, poste.AcceptsFormat("123456789012345"))
}
