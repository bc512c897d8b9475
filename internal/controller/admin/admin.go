package admin

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/ibeloyar/backoffice/internal/store"
	"go.uber.org/zap"
)

const (
	OrderDeletePrompt   = "Do you really want to delete this order ?"
	ProductDeletePrompt = "Êtes-vous sûr de vouloir supprimer ce produit ?"

	notFoundMessage = "Page introuvable."
)

type (
	OrderSession   = store.Session[model.Order, model.OrderState]
	ProductSession = store.Session[model.Product, model.ProductState]
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageFiles = []string{
	"orders_list.html",
	"order_form.html",
	"products_list.html",
	"product_form.html",
	"confirm.html",
	"message.html",
}

// view - общие данные каждой страницы
type view struct {
	Title   string
	Section string
	Error   string
	Body    any
}

type option struct {
	Value    int
	Label    string
	Selected bool
}

type confirmBody struct {
	Prompt string
	Action string
}

type Controller struct {
	orders   *OrderSession
	products *ProductSession
	pages    map[string]*template.Template
	lg       *zap.SugaredLogger
}

func New(orders *OrderSession, products *ProductSession, lg *zap.SugaredLogger) (*Controller, error) {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Controller{
		orders:   orders,
		products: products,
		pages:    pages,
		lg:       lg,
	}, nil
}

func parsePages() (map[string]*template.Template, error) {
	layout, err := template.ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}

		if _, err := t.ParseFS(templatesFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		pages[name] = t
	}

	return pages, nil
}

// render сначала выполняет шаблон в буфер, чтобы не отдавать клиенту половину страницы
func (c *Controller) render(w http.ResponseWriter, status int, page string, v view) {
	t, ok := c.pages[page]
	if !ok {
		c.lg.Errorf("unknown page %s", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		c.lg.Errorf("render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (c *Controller) renderMessage(w http.ResponseWriter, status int, section, title, errMsg, text string) {
	var body any
	if text != "" {
		body = text
	}

	c.render(w, status, "message.html", view{
		Title:   title,
		Section: section,
		Error:   errMsg,
		Body:    body,
	})
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// formConfirmer - подтверждение приходит из формы: confirm=yes
func formConfirmer(r *http.Request) store.Confirmer {
	return store.ConfirmFunc(func(string) bool {
		return r.PostFormValue("confirm") == "yes"
	})
}

// failureStatus - ошибки удаленного API показываются как 502, кроме 404
func failureStatus(err error) int {
	var tErr *model.TransportError
	if errors.As(err, &tErr) && tErr.Status == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func (c *Controller) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/orders")
}

func (c *Controller) Customers(w http.ResponseWriter, r *http.Request) {
	c.renderMessage(w, http.StatusOK, "customers", "Customers", "", "La gestion des clients n'est pas encore disponible.")
}

func (c *Controller) NotFound(w http.ResponseWriter, r *http.Request) {
	c.renderMessage(w, http.StatusNotFound, "", "404", "", notFoundMessage)
}
