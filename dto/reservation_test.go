package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindReservationJSON(t *testing.T, body string) (CreateReservationRequest, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var out CreateReservationRequest
	err := binding.JSON.Bind(req, &out)
	return out, err
}

func TestCreateReservationRequestBinding(t *testing.T) {
	out, err := bindReservationJSON(t, `{"propertyId":1,"startDate":"2027-06-01","endDate":"2027-06-05","totalPrice":600}`)
	require.NoError(t, err)
	assert.Equal(t, uint(1), out.PropertyID)

	// a free stay is a legal booking
	out, err = bindReservationJSON(t, `{"propertyId":1,"startDate":"2027-06-01","endDate":"2027-06-05","totalPrice":0}`)
	require.NoError(t, err)
	assert.Zero(t, out.TotalPrice)

	_, err = bindReservationJSON(t, `{"propertyId":1,"startDate":"2027-06-01","endDate":"2027-06-05","totalPrice":-10}`)
	assert.Error(t, err)

	_, err = bindReservationJSON(t, `{"startDate":"2027-06-01","endDate":"2027-06-05","totalPrice":600}`)
	assert.Error(t, err)
}
