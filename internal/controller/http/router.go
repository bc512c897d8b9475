package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)

	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	CreateOrder(w http.ResponseWriter, r *http.Request)
	UpdateOrder(w http.ResponseWriter, r *http.Request)
	DeleteOrder(w http.ResponseWriter, r *http.Request)

	GetProducts(w http.ResponseWriter, r *http.Request)
	GetProduct(w http.ResponseWriter, r *http.Request)
	CreateProduct(w http.ResponseWriter, r *http.Request)
	UpdateProduct(w http.ResponseWriter, r *http.Request)
	DeleteProduct(w http.ResponseWriter, r *http.Request)

	NotFound(w http.ResponseWriter, r *http.Request)
	MethodNotAllowed(w http.ResponseWriter, r *http.Request)
}

func InitRoutes(r *chi.Mux, h Handlers) *chi.Mux {
	r.Get("/ping", h.Ping)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.GetOrders)
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.GetProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
