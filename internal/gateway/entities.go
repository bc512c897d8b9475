package gateway

import (
	"context"

	"github.com/ibeloyar/backoffice/internal/model"
	"go.uber.org/zap"
)

const (
	OrdersPath   = "/orders"
	ProductsPath = "/products"
)

type Orders struct {
	*Gateway[model.Order]
}

func NewOrders(client Doer, baseURL string, lg *zap.SugaredLogger) *Orders {
	return &Orders{Gateway: New[model.Order](client, baseURL, OrdersPath, lg)}
}

// UpdateState - сокращение над Update: копия заказа с новым состоянием
func (g *Orders) UpdateState(ctx context.Context, order model.Order, state model.OrderState) (model.Order, error) {
	return g.Update(ctx, order.WithState(state))
}

type Products struct {
	*Gateway[model.Product]
}

func NewProducts(client Doer, baseURL string, lg *zap.SugaredLogger) *Products {
	return &Products{Gateway: New[model.Product](client, baseURL, ProductsPath, lg)}
}

func (g *Products) UpdateState(ctx context.Context, product model.Product, state model.ProductState) (model.Product, error) {
	return g.Update(ctx, product.WithState(state))
}
