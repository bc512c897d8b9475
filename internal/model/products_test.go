package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Defaults(t *testing.T) {
	assert.Equal(t, Product{State: ProductStateActive}, NewProduct(ProductPatch{}))
}

func TestNewProduct_Override(t *testing.T) {
	product := NewProduct(ProductPatch{
		Ref:   ptr("REF-1"),
		State: ptr(ProductStateInactive),
	})

	assert.Equal(t, "REF-1", product.Ref)
	assert.Equal(t, ProductStateInactive, product.State)
	assert.Empty(t, product.Description)
}

func TestProduct_UnmarshalJSON(t *testing.T) {
	var product Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","ref":"R"}`), &product))
	assert.Equal(t, ProductStateActive, product.State)

	err := json.Unmarshal([]byte(`{"state":2}`), &product)
	assert.ErrorIs(t, err, ErrInvalidProductState)
}

func TestProduct_Validate(t *testing.T) {
	assert.EqualError(t, DefaultProduct().Validate(), ErrProductRefRequiredMessage)
	assert.NoError(t, NewProduct(ProductPatch{Ref: ptr("R")}).Validate())
	assert.ErrorIs(t, NewProduct(ProductPatch{Ref: ptr("R")}).WithState(ProductState(7)).Validate(), ErrInvalidProductState)
}

func TestDisplayMessage(t *testing.T) {
	assert.Equal(t, "", DisplayMessage(nil))
	assert.Equal(t, "Network Error", DisplayMessage(&TransportError{Message: "Network Error"}))
	assert.Equal(t, ErrGenericMessage, DisplayMessage(&TransportError{Status: 500}))
	assert.Equal(t, "boom", DisplayMessage(errors.New("boom")))
}
