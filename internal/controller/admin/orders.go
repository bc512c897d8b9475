package admin

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/ibeloyar/backoffice/internal/store"
	"github.com/ibeloyar/backoffice/pgk/currency"
	"github.com/ibeloyar/backoffice/pgk/pricing"
)

// Итог с НДС показывается в USD/en-US: та же сумма, другой формат, без конвертации
const (
	exTaxCurrency  = "EUR"
	exTaxLocale    = "fr-FR"
	incTaxCurrency = "USD"
	incTaxLocale   = "en-US"
)

type orderRow struct {
	model.Order
	TotalExTax  string
	TotalIncTax string
	StateClass  string
	States      []option
}

type ordersBody struct {
	Failed bool
	Rows   []orderRow
}

type orderFormBody struct {
	Action string
	Order  model.Order
	States []option
}

func orderStateOptions(selected model.OrderState) []option {
	options := make([]option, 0, len(model.OrderStates))
	for _, s := range model.OrderStates {
		options = append(options, option{Value: int(s), Label: s.String(), Selected: s == selected})
	}
	return options
}

func newOrderRow(o model.Order) orderRow {
	return orderRow{
		Order:       o,
		TotalExTax:  currency.MustFormat(pricing.Total(o.UnitPrice, float64(o.NbOfDays)), exTaxCurrency, exTaxLocale),
		TotalIncTax: currency.MustFormat(pricing.Total(o.UnitPrice, float64(o.NbOfDays), o.VAT), incTaxCurrency, incTaxLocale),
		StateClass:  "state-" + strings.ToLower(o.State.String()),
		States:      orderStateOptions(o.State),
	}
}

func ordersView(st store.State[model.Order]) view {
	body := ordersBody{Failed: st.Phase == store.PhaseFailed}
	for _, o := range st.Items {
		body.Rows = append(body.Rows, newOrderRow(o))
	}

	return view{
		Title:   "List orders",
		Section: "orders",
		Error:   st.Error,
		Body:    body,
	}
}

func (c *Controller) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		st  store.State[model.Order]
		err error
	)

	if r.URL.Query().Get("refresh") != "" {
		st, err = c.orders.Refresh(r.Context())
	} else {
		st, err = c.orders.Load(r.Context())
	}

	status := http.StatusOK
	if err != nil {
		c.lg.Errorf("load orders: %v", err)
		status = failureStatus(err)
	}

	c.render(w, status, "orders_list.html", ordersView(st))
}

// parseOrderForm накладывает значения формы на base; пустые числовые поля оставляют значение base
func parseOrderForm(r *http.Request, base model.Order) (model.Order, error) {
	if err := r.ParseForm(); err != nil {
		return base, err
	}

	order := base
	order.Customer = r.PostFormValue("customer")
	order.Type = r.PostFormValue("type")
	order.Comment = r.PostFormValue("comment")

	if v := strings.TrimSpace(r.PostFormValue("unitPrice")); v != "" {
		f, err := parseAmount(v)
		if err != nil {
			return base, fmt.Errorf("prix unitaire invalide: %q", v)
		}
		order.UnitPrice = f
	}

	if v := strings.TrimSpace(r.PostFormValue("nbOfDays")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return base, fmt.Errorf("nombre de jours invalide: %q", v)
		}
		order.NbOfDays = n
	}

	if v := strings.TrimSpace(r.PostFormValue("vat")); v != "" {
		f, err := parseAmount(v)
		if err != nil {
			return base, fmt.Errorf("TVA invalide: %q", v)
		}
		order.VAT = f
	}

	if v := strings.TrimSpace(r.PostFormValue("state")); v != "" {
		state, err := parseOrderState(v)
		if err != nil {
			return base, err
		}
		order.State = state
	}

	return order, nil
}

// parseAmount - ParseFloat принимает NaN и Inf, в форме они недопустимы
func parseAmount(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", v)
	}
	return f, nil
}

func parseOrderState(v string) (model.OrderState, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidOrderState, v)
	}
	return model.ParseOrderState(n)
}

func (c *Controller) renderOrderForm(w http.ResponseWriter, status int, title, action string, order model.Order, errMsg string) {
	c.render(w, status, "order_form.html", view{
		Title:   title,
		Section: "orders",
		Error:   errMsg,
		Body: orderFormBody{
			Action: action,
			Order:  order,
			States: orderStateOptions(order.State),
		},
	})
}

func (c *Controller) AddOrderForm(w http.ResponseWriter, r *http.Request) {
	c.renderOrderForm(w, http.StatusOK, "Add Order", "/orders/add", model.DefaultOrder(), "")
}

func (c *Controller) AddOrder(w http.ResponseWriter, r *http.Request) {
	order, err := parseOrderForm(r, model.DefaultOrder())
	if err != nil {
		c.renderOrderForm(w, http.StatusUnprocessableEntity, "Add Order", "/orders/add", order, err.Error())
		return
	}

	if _, err := c.orders.Create(r.Context(), order); err != nil {
		c.lg.Errorf("create order: %v", err)
		c.renderOrderForm(w, failureStatus(err), "Add Order", "/orders/add", order, model.DisplayMessage(err))
		return
	}

	redirect(w, r, "/orders")
}

func (c *Controller) EditOrderForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := c.orders.Select(r.Context(), id)
	if err != nil {
		c.lg.Errorf("get order %s: %v", id, err)
		c.renderMessage(w, failureStatus(err), "orders", "Edit Order", model.DisplayMessage(err), "")
		return
	}

	c.renderOrderForm(w, http.StatusOK, "Edit Order", "/orders/edit/"+id, order, "")
}

func (c *Controller) EditOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	base, ok := c.orders.Find(id)
	if !ok {
		var err error
		base, err = c.orders.Select(r.Context(), id)
		if err != nil {
			c.renderMessage(w, failureStatus(err), "orders", "Edit Order", model.DisplayMessage(err), "")
			return
		}
	}

	order, err := parseOrderForm(r, base)
	if err != nil {
		c.renderOrderForm(w, http.StatusUnprocessableEntity, "Edit Order", "/orders/edit/"+id, order, err.Error())
		return
	}

	if _, err := c.orders.Update(r.Context(), order.WithID(id)); err != nil {
		c.lg.Errorf("update order %s: %v", id, err)
		c.renderOrderForm(w, failureStatus(err), "Edit Order", "/orders/edit/"+id, order, model.DisplayMessage(err))
		return
	}

	redirect(w, r, "/orders")
}

// ChangeOrderState - ошибка не откатывает коллекцию, сообщение показывается в списке
func (c *Controller) ChangeOrderState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := parseOrderState(r.PostFormValue("state"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, ok := c.orders.Find(id)
	if !ok {
		if order, err = c.orders.Select(r.Context(), id); err != nil {
			c.lg.Errorf("get order %s: %v", id, err)
			redirect(w, r, "/orders")
			return
		}
	}

	if _, err := c.orders.ChangeState(r.Context(), order, state); err != nil {
		c.lg.Errorf("change order %s state: %v", id, err)
	}

	redirect(w, r, "/orders")
}

func (c *Controller) DeleteOrderConfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c.render(w, http.StatusOK, "confirm.html", view{
		Title:   "Delete order",
		Section: "orders",
		Body: confirmBody{
			Prompt: c.orders.DeletePrompt(),
			Action: "/orders/" + id + "/delete",
		},
	})
}

func (c *Controller) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := c.orders.Delete(r.Context(), id, formConfirmer(r)); err != nil {
		c.lg.Errorf("delete order %s: %v", id, err)
	}

	redirect(w, r, "/orders")
}
