package admin

import (
	"github.com/go-chi/chi/v5"
)

func InitRoutes(r *chi.Mux, c *Controller) *chi.Mux {
	r.Get("/", c.Home)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", c.ListOrders)
		r.Get("/add", c.AddOrderForm)
		r.Post("/add", c.AddOrder)
		r.Get("/edit/{id}", c.EditOrderForm)
		r.Post("/edit/{id}", c.EditOrder)
		r.Post("/{id}/state", c.ChangeOrderState)
		r.Get("/{id}/delete", c.DeleteOrderConfirm)
		r.Post("/{id}/delete", c.DeleteOrder)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", c.ListProducts)
		r.Get("/add", c.AddProductForm)
		r.Post("/add", c.AddProduct)
		r.Get("/edit/{id}", c.EditProductForm)
		r.Post("/edit/{id}", c.EditProduct)
		r.Post("/{id}/state", c.ChangeProductState)
		r.Get("/{id}/delete", c.DeleteProductConfirm)
		r.Post("/{id}/delete", c.DeleteProduct)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", c.Customers)
		r.Get("/add", c.Customers)
		r.Get("/edit/{id}", c.Customers)
	})

	r.NotFound(c.NotFound)

	return r
}
