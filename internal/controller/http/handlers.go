package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ibeloyar/backoffice/internal/model"
	"go.uber.org/zap"
)

type Service interface {
	Ping(ctx context.Context) *model.APIError

	GetOrders(ctx context.Context) ([]model.Order, *model.APIError)
	GetOrder(ctx context.Context, id string) (model.Order, *model.APIError)
	CreateOrder(ctx context.Context, order model.Order) (model.Order, *model.APIError)
	UpdateOrder(ctx context.Context, id string, order model.Order) (model.Order, *model.APIError)
	DeleteOrder(ctx context.Context, id string) (model.Order, *model.APIError)

	GetProducts(ctx context.Context) ([]model.Product, *model.APIError)
	GetProduct(ctx context.Context, id string) (model.Product, *model.APIError)
	CreateProduct(ctx context.Context, product model.Product) (model.Product, *model.APIError)
	UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, *model.APIError)
	DeleteProduct(ctx context.Context, id string) (model.Product, *model.APIError)
}

type Controller struct {
	service Service
	lg      *zap.SugaredLogger
}

func New(s Service, lg *zap.SugaredLogger) *Controller {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Controller{
		lg:      lg,
		service: s,
	}
}

func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	if apiErr := c.service.Ping(r.Context()); apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (c *Controller) badBody(w http.ResponseWriter, err error) {
	c.lg.Infof("bad request body: %v", err)
	writeError(w, c.lg, &model.APIError{
		Code:    http.StatusBadRequest,
		Message: model.ErrInvalidBodyMessage,
	})
}

func (c *Controller) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, apiErr := c.service.GetOrders(r.Context())
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, orders, http.StatusOK)
}

func (c *Controller) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, apiErr := c.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, order, http.StatusOK)
}

func (c *Controller) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[model.Order](r)
	if err != nil {
		c.badBody(w, err)
		return
	}

	order, apiErr := c.service.CreateOrder(r.Context(), body)
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, order, http.StatusCreated)
}

func (c *Controller) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[model.Order](r)
	if err != nil {
		c.badBody(w, err)
		return
	}

	order, apiErr := c.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), body)
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, order, http.StatusOK)
}

func (c *Controller) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	order, apiErr := c.service.DeleteOrder(r.Context(), chi.URLParam(r, "id"))
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, order, http.StatusOK)
}

func (c *Controller) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, apiErr := c.service.GetProducts(r.Context())
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, products, http.StatusOK)
}

func (c *Controller) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, apiErr := c.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, product, http.StatusOK)
}

func (c *Controller) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[model.Product](r)
	if err != nil {
		c.badBody(w, err)
		return
	}

	product, apiErr := c.service.CreateProduct(r.Context(), body)
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, product, http.StatusCreated)
}

func (c *Controller) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[model.Product](r)
	if err != nil {
		c.badBody(w, err)
		return
	}

	product, apiErr := c.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), body)
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, product, http.StatusOK)
}

func (c *Controller) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, apiErr := c.service.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if apiErr != nil {
		writeError(w, c.lg, apiErr)
		return
	}

	writeJSON(w, c.lg, product, http.StatusOK)
}

// NotFound - неизвестный путь тоже отвечает JSON-ошибкой
func (c *Controller) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, c.lg, &model.APIError{
		Code:    http.StatusNotFound,
		Message: http.StatusText(http.StatusNotFound),
	})
}

func (c *Controller) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, c.lg, &model.APIError{
		Code:    http.StatusMethodNotAllowed,
		Message: http.StatusText(http.StatusMethodNotAllowed),
	})
}
