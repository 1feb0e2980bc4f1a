package inventory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotworks/dealdesk/desklog"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Available", Available().String())
	assert.Equal(t, "Available", Status{}.String())
	assert.Equal(t, "Sold - Retail", Sold(desklog.DealRetail).String())
	assert.Equal(t, "Sold - Wholesale", Sold(desklog.DealWholesale).String())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("")
	require.NoError(t, err)
	assert.False(t, st.Sold)

	st, err = ParseStatus("Available")
	require.NoError(t, err)
	assert.False(t, st.Sold)

	st, err = ParseStatus("Sold - Lease")
	require.NoError(t, err)
	assert.True(t, st.Sold)
	assert.Equal(t, desklog.DealLease, st.DealType)

	_, err = ParseStatus("Sold - Barter")
	assert.Error(t, err)

	_, err = ParseStatus("sold - Retail")
	assert.Error(t, err)
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	for _, st := range []Status{Available(), Sold(desklog.DealFleet)} {
		b, err := json.Marshal(st)
		require.NoError(t, err)

		var got Status
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, st, got)
	}
}
