package service

import (
	"net/http"
	"testing"

	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	assert.Nil(t, validateID(validID, model.ErrOrderNotFoundMessage))

	for _, id := range []string{"", "1", "../orders", "5f0c3a7e"} {
		apiErr := validateID(id, model.ErrOrderNotFoundMessage)
		require.NotNil(t, apiErr, id)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)
		assert.Equal(t, model.ErrOrderNotFoundMessage, apiErr.Message)
	}
}

func TestValidateOrder(t *testing.T) {
	assert.Nil(t, validateOrder(model.DefaultOrder()))

	apiErr := validateOrder(model.DefaultOrder().WithState(model.OrderState(7)))
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
}

func TestValidateProduct(t *testing.T) {
	assert.Nil(t, validateProduct(model.Product{Ref: "REF-1", State: model.ProductStateActive}))

	apiErr := validateProduct(model.Product{Ref: "   "})
	require.NotNil(t, apiErr)
	assert.Equal(t, model.ErrProductRefRequiredMessage, apiErr.Message)
}
