package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/ibeloyar/backoffice/internal/model"
)

type StorageRepo interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (model.Order, error)
	CreateOrder(ctx context.Context, order model.Order) error
	UpdateOrder(ctx context.Context, order model.Order) error
	DeleteOrder(ctx context.Context, id string) (model.Order, error)

	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) error
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id string) (model.Product, error)

	Ping(ctx context.Context) error
}

type Service struct {
	storage StorageRepo
	newID   func() string
}

func New(s StorageRepo) *Service {
	return &Service{
		storage: s,
		newID:   uuid.NewString,
	}
}

func (s *Service) Ping(ctx context.Context) *model.APIError {
	if err := s.storage.Ping(ctx); err != nil {
		return internalError()
	}
	return nil
}

func (s *Service) GetOrders(ctx context.Context) ([]model.Order, *model.APIError) {
	orders, err := s.storage.ListOrders(ctx)
	if err != nil {
		return nil, internalError()
	}

	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (model.Order, *model.APIError) {
	if apiErr := validateID(id, model.ErrOrderNotFoundMessage); apiErr != nil {
		return model.Order{}, apiErr
	}

	order, err := s.storage.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, storageError(err, model.ErrOrderNotFoundMessage, model.ErrOrderExistMessage)
	}

	return order, nil
}

// CreateOrder - идентификатор всегда назначает сервер, присланный клиентом игнорируется
func (s *Service) CreateOrder(ctx context.Context, order model.Order) (model.Order, *model.APIError) {
	if apiErr := validateOrder(order); apiErr != nil {
		return model.Order{}, apiErr
	}

	order.ID = s.newID()
	if err := s.storage.CreateOrder(ctx, order); err != nil {
		return model.Order{}, storageError(err, model.ErrOrderNotFoundMessage, model.ErrOrderExistMessage)
	}

	return order, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id string, order model.Order) (model.Order, *model.APIError) {
	if apiErr := validateID(id, model.ErrOrderNotFoundMessage); apiErr != nil {
		return model.Order{}, apiErr
	}
	if apiErr := validateOrder(order); apiErr != nil {
		return model.Order{}, apiErr
	}

	order.ID = id
	if err := s.storage.UpdateOrder(ctx, order); err != nil {
		return model.Order{}, storageError(err, model.ErrOrderNotFoundMessage, model.ErrOrderExistMessage)
	}

	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) (model.Order, *model.APIError) {
	if apiErr := validateID(id, model.ErrOrderNotFoundMessage); apiErr != nil {
		return model.Order{}, apiErr
	}

	order, err := s.storage.DeleteOrder(ctx, id)
	if err != nil {
		return model.Order{}, storageError(err, model.ErrOrderNotFoundMessage, model.ErrOrderExistMessage)
	}

	return order, nil
}

func (s *Service) GetProducts(ctx context.Context) ([]model.Product, *model.APIError) {
	products, err := s.storage.ListProducts(ctx)
	if err != nil {
		return nil, internalError()
	}

	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (model.Product, *model.APIError) {
	if apiErr := validateID(id, model.ErrProductNotFoundMessage); apiErr != nil {
		return model.Product{}, apiErr
	}

	product, err := s.storage.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, storageError(err, model.ErrProductNotFoundMessage, model.ErrProductRefExistMessage)
	}

	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, product model.Product) (model.Product, *model.APIError) {
	if apiErr := validateProduct(product); apiErr != nil {
		return model.Product{}, apiErr
	}

	product.ID = s.newID()
	if err := s.storage.CreateProduct(ctx, product); err != nil {
		return model.Product{}, storageError(err, model.ErrProductNotFoundMessage, model.ErrProductRefExistMessage)
	}

	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, *model.APIError) {
	if apiErr := validateID(id, model.ErrProductNotFoundMessage); apiErr != nil {
		return model.Product{}, apiErr
	}
	if apiErr := validateProduct(product); apiErr != nil {
		return model.Product{}, apiErr
	}

	product.ID = id
	if err := s.storage.UpdateProduct(ctx, product); err != nil {
		return model.Product{}, storageError(err, model.ErrProductNotFoundMessage, model.ErrProductRefExistMessage)
	}

	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) (model.Product, *model.APIError) {
	if apiErr := validateID(id, model.ErrProductNotFoundMessage); apiErr != nil {
		return model.Product{}, apiErr
	}

	product, err := s.storage.DeleteProduct(ctx, id)
	if err != nil {
		return model.Product{}, storageError(err, model.ErrProductNotFoundMessage, model.ErrProductRefExistMessage)
	}

	return product, nil
}

// storageError переводит ошибку хранилища в ответ API
func storageError(err error, notFoundMessage, existMessage string) *model.APIError {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return &model.APIError{
			Code:    http.StatusNotFound,
			Message: notFoundMessage,
		}
	case errors.Is(err, model.ErrAlreadyExists):
		return &model.APIError{
			Code:    http.StatusConflict,
			Message: existMessage,
		}
	}

	return internalError()
}

func internalError() *model.APIError {
	return &model.APIError{
		Code:    http.StatusInternalServerError,
		Message: model.ErrInternalServerMessage,
	}
}
