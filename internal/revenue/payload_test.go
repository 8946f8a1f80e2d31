package revenue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListResponse_List(t *testing.T) {
	body := `{"success":true,"data":[{"name":"State U","commission":"10%","actualAnnualDeal":1000,"dealTermLength":2,"contractStartDate":"2024-01-15T00:00:00.000Z"}]}`

	props, err := DecodeListResponse(strings.NewReader(body))

	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "State U", props[0].Name)
	assert.Equal(t, 2024, props[0].ContractStartDate.Year())
}

func TestDecodeListResponse_UnsuccessfulIsEmpty(t *testing.T) {
	props, err := DecodeListResponse(strings.NewReader(`{"success":false,"error":"db down"}`))

	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestDecodeListResponse_NonListIsMalformed(t *testing.T) {
	for _, body := range []string{
		`{"success":true,"data":{"name":"x"}}`,
		`{"success":true}`,
		`{"success":true,"data":"oops"}`,
		`not json`,
	} {
		_, err := DecodeListResponse(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrMalformedPayload, body)
	}
}
