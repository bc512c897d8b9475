package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/ibeloyar/backoffice/internal/store"
)

type productRow struct {
	model.Product
	Badge  string
	States []option
}

type productsBody struct {
	Failed bool
	Rows   []productRow
}

type productFormBody struct {
	Action  string
	Product model.Product
	States  []option
}

func productStateOptions(selected model.ProductState) []option {
	options := make([]option, 0, len(model.ProductStates))
	for _, s := range model.ProductStates {
		options = append(options, option{Value: int(s), Label: s.String(), Selected: s == selected})
	}
	return options
}

func productsView(st store.State[model.Product]) view {
	body := productsBody{Failed: st.Phase == store.PhaseFailed}
	for _, p := range st.Items {
		badge := "bg-danger"
		if p.State == model.ProductStateActive {
			badge = "bg-success"
		}
		body.Rows = append(body.Rows, productRow{Product: p, Badge: badge, States: productStateOptions(p.State)})
	}

	return view{
		Title:   "Liste des produits",
		Section: "products",
		Error:   st.Error,
		Body:    body,
	}
}

func (c *Controller) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		st  store.State[model.Product]
		err error
	)

	if r.URL.Query().Get("refresh") != "" {
		st, err = c.products.Refresh(r.Context())
	} else {
		st, err = c.products.Load(r.Context())
	}

	status := http.StatusOK
	if err != nil {
		c.lg.Errorf("load products: %v", err)
		status = failureStatus(err)
	}

	c.render(w, status, "products_list.html", productsView(st))
}

func parseProductForm(r *http.Request, base model.Product) (model.Product, error) {
	if err := r.ParseForm(); err != nil {
		return base, err
	}

	product := base
	product.Ref = strings.TrimSpace(r.PostFormValue("ref"))
	product.Description = r.PostFormValue("description")

	if v := strings.TrimSpace(r.PostFormValue("state")); v != "" {
		state, err := parseProductState(v)
		if err != nil {
			return base, err
		}
		product.State = state
	}

	return product, nil
}

func parseProductState(v string) (model.ProductState, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidProductState, v)
	}
	return model.ParseProductState(n)
}

func (c *Controller) renderProductForm(w http.ResponseWriter, status int, title, action string, product model.Product, errMsg string) {
	c.render(w, status, "product_form.html", view{
		Title:   title,
		Section: "products",
		Error:   errMsg,
		Body: productFormBody{
			Action:  action,
			Product: product,
			States:  productStateOptions(product.State),
		},
	})
}

func (c *Controller) AddProductForm(w http.ResponseWriter, r *http.Request) {
	c.renderProductForm(w, http.StatusOK, "Ajouter un produit", "/products/add", model.DefaultProduct(), "")
}

func (c *Controller) AddProduct(w http.ResponseWriter, r *http.Request) {
	product, err := parseProductForm(r, model.DefaultProduct())
	if err == nil {
		err = product.Validate()
	}
	if err != nil {
		c.renderProductForm(w, http.StatusUnprocessableEntity, "Ajouter un produit", "/products/add", product, err.Error())
		return
	}

	if _, err := c.products.Create(r.Context(), product); err != nil {
		c.lg.Errorf("create product: %v", err)
		c.renderProductForm(w, failureStatus(err), "Ajouter un produit", "/products/add", product, model.DisplayMessage(err))
		return
	}

	redirect(w, r, "/products")
}

func (c *Controller) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := c.products.Select(r.Context(), id)
	if err != nil {
		c.lg.Errorf("get product %s: %v", id, err)
		c.renderMessage(w, failureStatus(err), "products", "Éditer le produit", model.DisplayMessage(err), "")
		return
	}

	c.renderProductForm(w, http.StatusOK, "Éditer le produit", "/products/edit/"+id, product, "")
}

func (c *Controller) EditProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	base, ok := c.products.Find(id)
	if !ok {
		var err error
		base, err = c.products.Select(r.Context(), id)
		if err != nil {
			c.renderMessage(w, failureStatus(err), "products", "Éditer le produit", model.DisplayMessage(err), "")
			return
		}
	}

	product, err := parseProductForm(r, base)
	if err == nil {
		err = product.Validate()
	}
	if err != nil {
		c.renderProductForm(w, http.StatusUnprocessableEntity, "Éditer le produit", "/products/edit/"+id, product, err.Error())
		return
	}

	if _, err := c.products.Update(r.Context(), product.WithID(id)); err != nil {
		c.lg.Errorf("update product %s: %v", id, err)
		c.renderProductForm(w, failureStatus(err), "Éditer le produit", "/products/edit/"+id, product, model.DisplayMessage(err))
		return
	}

	redirect(w, r, "/products")
}

func (c *Controller) ChangeProductState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := parseProductState(r.PostFormValue("state"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, ok := c.products.Find(id)
	if !ok {
		if product, err = c.products.Select(r.Context(), id); err != nil {
			c.lg.Errorf("get product %s: %v", id, err)
			redirect(w, r, "/products")
			return
		}
	}

	if _, err := c.products.ChangeState(r.Context(), product, state); err != nil {
		c.lg.Errorf("change product %s state: %v", id, err)
	}

	redirect(w, r, "/products")
}

func (c *Controller) DeleteProductConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c.render(w, http.StatusOK, "confirm.html", view{
		Title:   "Supprimer le produit",
		Section: "products",
		Body: confirmBody{
			Prompt: c.products.DeletePrompt(),
			Action: "/products/" + id + "/delete",
		},
	})
}

func (c *Controller) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := c.products.Delete(r.Context(), id, formConfirmer(r)); err != nil {
		c.lg.Errorf("delete product %s: %v", id, err)
	}

	redirect(w, r, "/products")
}
