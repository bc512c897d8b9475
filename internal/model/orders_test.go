package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewOrder_Defaults(t *testing.T) {
	order := NewOrder(OrderPatch{})

	assert.Equal(t, Order{
		UnitPrice: 1500,
		NbOfDays:  1,
		VAT:       20,
		State:     OrderStateOption,
	}, order)
}

func TestNewOrder_PartialOverride(t *testing.T) {
	order := NewOrder(OrderPatch{
		UnitPrice: ptr(500.0),
		Customer:  ptr("Atos"),
	})

	assert.Equal(t, 500.0, order.UnitPrice)
	assert.Equal(t, "Atos", order.Customer)
	assert.Equal(t, 1, order.NbOfDays)
	assert.Equal(t, 20.0, order.VAT)
	assert.Equal(t, OrderStateOption, order.State)
	assert.Empty(t, order.ID)
	assert.Empty(t, order.Type)
	assert.Empty(t, order.Comment)
}

func TestNewOrder_NoValidationOnConstruction(t *testing.T) {
	order := NewOrder(OrderPatch{UnitPrice: ptr(-10.0), NbOfDays: ptr(0)})

	assert.Equal(t, -10.0, order.UnitPrice)
	assert.Equal(t, 0, order.NbOfDays)
	assert.Error(t, order.Validate())
}

func TestNewOrder_FullPatchOverridesEveryDefault(t *testing.T) {
	patch := OrderPatch{
		ID:        ptr("7"),
		UnitPrice: ptr(800.0),
		NbOfDays:  ptr(10),
		VAT:       ptr(5.5),
		State:     ptr(OrderStateCanceled),
		Type:      ptr("Dev"),
		Customer:  ptr("XYZ"),
		Comment:   ptr("c"),
	}

	want := Order{ID: "7", UnitPrice: 800, NbOfDays: 10, VAT: 5.5, State: OrderStateCanceled, Type: "Dev", Customer: "XYZ", Comment: "c"}
	assert.Equal(t, want, NewOrder(patch))
}

func TestOrder_WithStateDoesNotMutate(t *testing.T) {
	src := NewOrder(OrderPatch{ID: ptr("1")})

	changed := src.WithState(OrderStateConfirmed)

	assert.Equal(t, OrderStateOption, src.State)
	assert.Equal(t, OrderStateConfirmed, changed.State)
	assert.Equal(t, src.ID, changed.ID)
}

func TestOrder_UnmarshalJSON_KeepsDefaults(t *testing.T) {
	var order Order
	err := json.Unmarshal([]byte(`{"id":"abc","customer":"Atos"}`), &order)

	require.NoError(t, err)
	assert.Equal(t, "abc", order.ID)
	assert.Equal(t, "Atos", order.Customer)
	assert.Equal(t, 1500.0, order.UnitPrice)
	assert.Equal(t, OrderStateOption, order.State)
}

func TestOrder_UnmarshalJSON_UnknownStateFails(t *testing.T) {
	tests := []string{
		`{"state":3}`,
		`{"state":-1}`,
		`{"state":"CONFIRMED"}`,
	}

	for _, body := range tests {
		t.Run(body, func(t *testing.T) {
			var order Order
			err := json.Unmarshal([]byte(body), &order)
			assert.ErrorIs(t, err, ErrInvalidOrderState)
		})
	}
}

func TestOrder_MarshalJSON_OmitsEmptyID(t *testing.T) {
	data, err := json.Marshal(NewOrder(OrderPatch{}))

	require.NoError(t, err)
	assert.NotContains(t, string(data), `"id"`)
	assert.Contains(t, string(data), `"unitPrice":1500`)
	assert.Contains(t, string(data), `"state":1`)
}

func TestParseOrderState(t *testing.T) {
	for _, s := range OrderStates {
		got, err := ParseOrderState(int(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseOrderState(42)
	assert.ErrorIs(t, err, ErrInvalidOrderState)
}

func TestOrderState_String(t *testing.T) {
	assert.Equal(t, "Canceled", OrderStateCanceled.String())
	assert.Equal(t, "Option", OrderStateOption.String())
	assert.Equal(t, "Confirmed", OrderStateConfirmed.String())
	assert.Equal(t, "OrderState(9)", OrderState(9).String())
}

func TestOrder_Validate(t *testing.T) {
	assert.NoError(t, DefaultOrder().Validate())
	assert.EqualError(t, DefaultOrder().WithState(OrderState(5)).Validate(), ErrInvalidOrderState.Error())

	o := DefaultOrder()
	o.NbOfDays = 0
	assert.EqualError(t, o.Validate(), ErrOrderNbOfDaysMessage)
}
