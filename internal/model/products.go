package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type ProductState int

const (
	ProductStateInactive ProductState = iota
	ProductStateActive
)

const DefaultProductState = ProductStateActive

var ProductStates = []ProductState{ProductStateInactive, ProductStateActive}

var productStateLabels = map[ProductState]string{
	ProductStateInactive: "Inactive",
	ProductStateActive:   "Active",
}

var ErrInvalidProductState = errors.New("invalid product state")

func (s ProductState) Valid() bool {
	_, ok := productStateLabels[s]
	return ok
}

func (s ProductState) String() string {
	if label, ok := productStateLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("ProductState(%d)", int(s))
}

func ParseProductState(v int) (ProductState, error) {
	s := ProductState(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidProductState, v)
	}
	return s, nil
}

func (s *ProductState) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProductState, string(data))
	}

	parsed, err := ParseProductState(v)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

type Product struct {
	ID          string       `json:"id,omitempty"`
	State       ProductState `json:"state"`
	Ref         string       `json:"ref"`
	Description string       `json:"description"`
}

type ProductPatch struct {
	ID          *string       `json:"id"`
	State       *ProductState `json:"state"`
	Ref         *string       `json:"ref"`
	Description *string       `json:"description"`
}

func DefaultProduct() Product {
	return Product{State: DefaultProductState}
}

func NewProduct(patch ProductPatch) Product {
	product := DefaultProduct()

	if patch.ID != nil {
		product.ID = *patch.ID
	}
	if patch.State != nil {
		product.State = *patch.State
	}
	if patch.Ref != nil {
		product.Ref = *patch.Ref
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}

	return product
}

func (p Product) GetID() string {
	return p.ID
}

func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}

func (p Product) WithState(state ProductState) Product {
	p.State = state
	return p
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var patch ProductPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return err
	}

	*p = NewProduct(patch)
	return nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Ref) == "" {
		return errors.New(ErrProductRefRequiredMessage)
	}
	if !p.State.Valid() {
		return ErrInvalidProductState
	}

	return nil
}
