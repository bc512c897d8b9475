package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

type OrderState int

const (
	OrderStateCanceled OrderState = iota
	OrderStateOption
	OrderStateConfirmed
)

const (
	DefaultOrderUnitPrice = 1500
	DefaultOrderNbOfDays  = 1
	DefaultOrderVAT       = 20
	DefaultOrderState     = OrderStateOption
)

// OrderStates - все допустимые состояния в порядке отображения
var OrderStates = []OrderState{OrderStateCanceled, OrderStateOption, OrderStateConfirmed}

var orderStateLabels = map[OrderState]string{
	OrderStateCanceled:  "Canceled",
	OrderStateOption:    "Option",
	OrderStateConfirmed: "Confirmed",
}

var ErrInvalidOrderState = errors.New("invalid order state")

func (s OrderState) Valid() bool {
	_, ok := orderStateLabels[s]
	return ok
}

func (s OrderState) String() string {
	if label, ok := orderStateLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("OrderState(%d)", int(s))
}

// ParseOrderState принимает числовое значение состояния; неизвестные значения отклоняются
func ParseOrderState(v int) (OrderState, error) {
	s := OrderState(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOrderState, v)
	}
	return s, nil
}

func (s *OrderState) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOrderState, string(data))
	}

	parsed, err := ParseOrderState(v)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

type Order struct {
	ID        string     `json:"id,omitempty"`
	UnitPrice float64    `json:"unitPrice"`
	NbOfDays  int        `json:"nbOfDays"`
	VAT       float64    `json:"vat"`
	State     OrderState `json:"state"`
	Type      string     `json:"type"`
	Customer  string     `json:"customer"`
	Comment   string     `json:"comment"`
}

// OrderPatch - частичные данные заказа; nil означает "взять значение по умолчанию"
type OrderPatch struct {
	ID        *string     `json:"id"`
	UnitPrice *float64    `json:"unitPrice"`
	NbOfDays  *int        `json:"nbOfDays"`
	VAT       *float64    `json:"vat"`
	State     *OrderState `json:"state"`
	Type      *string     `json:"type"`
	Customer  *string     `json:"customer"`
	Comment   *string     `json:"comment"`
}

func DefaultOrder() Order {
	return Order{
		UnitPrice: DefaultOrderUnitPrice,
		NbOfDays:  DefaultOrderNbOfDays,
		VAT:       DefaultOrderVAT,
		State:     DefaultOrderState,
	}
}

// NewOrder накладывает заданные поля patch поверх значений по умолчанию без валидации
func NewOrder(patch OrderPatch) Order {
	order := DefaultOrder()

	if patch.ID != nil {
		order.ID = *patch.ID
	}
	if patch.UnitPrice != nil {
		order.UnitPrice = *patch.UnitPrice
	}
	if patch.NbOfDays != nil {
		order.NbOfDays = *patch.NbOfDays
	}
	if patch.VAT != nil {
		order.VAT = *patch.VAT
	}
	if patch.State != nil {
		order.State = *patch.State
	}
	if patch.Type != nil {
		order.Type = *patch.Type
	}
	if patch.Customer != nil {
		order.Customer = *patch.Customer
	}
	if patch.Comment != nil {
		order.Comment = *patch.Comment
	}

	return order
}

func (o Order) GetID() string {
	return o.ID
}

func (o Order) WithID(id string) Order {
	o.ID = id
	return o
}

func (o Order) WithState(state OrderState) Order {
	o.State = state
	return o
}

// UnmarshalJSON - отсутствующие в JSON поля получают значения по умолчанию
func (o *Order) UnmarshalJSON(data []byte) error {
	var patch OrderPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return err
	}

	*o = NewOrder(patch)
	return nil
}

func (o Order) Validate() error {
	if o.UnitPrice < 0 {
		return errors.New(ErrOrderUnitPriceMessage)
	}
	if o.NbOfDays < 1 {
		return errors.New(ErrOrderNbOfDaysMessage)
	}
	if !o.State.Valid() {
		return ErrInvalidOrderState
	}

	return nil
}
