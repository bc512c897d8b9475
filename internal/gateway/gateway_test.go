package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/ibeloyar/backoffice/pgk/retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrdersGateway(t *testing.T, handler http.HandlerFunc) (*Orders, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{})
	return NewOrders(client, server.URL+"/", nil), server
}

func assertTransportError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var tErr *model.TransportError
	require.True(t, errors.As(err, &tErr), "expected *model.TransportError, got %T", err)
	assert.Equal(t, status, tErr.Status)
	assert.Equal(t, message, tErr.Message)
}

func TestGateway_ListAll(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","customer":"ABC","unitPrice":1000,"nbOfDays":5,"vat":20,"state":1},{"id":"2","state":2}]`))
	})

	orders, err := g.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ABC", orders[0].Customer)
	assert.Equal(t, 1000.0, orders[0].UnitPrice)
	assert.Equal(t, model.OrderStateConfirmed, orders[1].State)
	// отсутствующие поля получают значения по умолчанию
	assert.Equal(t, 1500.0, orders[1].UnitPrice)
}

func TestGateway_ListAll_Empty(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	orders, err := g.ListAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Len(t, orders, 0)
}

func TestGateway_GetByID_NotFound(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := g.GetByID(context.Background(), "42")

	assertTransportError(t, err, http.StatusNotFound, "request failed with status code 404")
}

func TestGateway_ErrorMessageFromBody(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"message":"number of days must be positive"}`))
	})

	_, err := g.Create(context.Background(), model.DefaultOrder())

	assertTransportError(t, err, http.StatusBadRequest, "number of days must be positive")
}

func TestGateway_Create_SendsRecordWithoutID(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var raw map[string]any
		require.NoError(t, json.Unmarshal(body, &raw))
		assert.NotContains(t, raw, "id")

		raw["id"] = "new-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(raw)
	})

	order := model.DefaultOrder()
	order.Customer = "Atos"

	created, err := g.Create(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)
	assert.Equal(t, "Atos", created.Customer)
}

func TestGateway_Update_RequiresID(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := g.Update(context.Background(), model.DefaultOrder())
	assertTransportError(t, err, 0, "record id is required")

	_, err = g.Delete(context.Background(), "")
	assertTransportError(t, err, 0, "record id is required")
}

func TestGateway_UpdateState(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/1", r.URL.Path)
		io.Copy(w, r.Body)
	})

	order := model.DefaultOrder().WithID("1")

	first, err := g.UpdateState(context.Background(), order, model.OrderStateConfirmed)
	require.NoError(t, err)
	second, err := g.UpdateState(context.Background(), order, model.OrderStateConfirmed)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStateConfirmed, first.State)
	assert.Equal(t, first, second)
	assert.Equal(t, model.OrderStateOption, order.State)
}

func TestGateway_Delete_EmptyBody(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := g.Delete(context.Background(), "1")
	assert.NoError(t, err)
}

func TestGateway_EmptyBodyGetsDefaults(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	got, err := g.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultOrder(), got)

	updated, err := g.Update(context.Background(), model.DefaultOrder().WithID("1"))
	require.NoError(t, err)
	assert.Equal(t, float64(model.DefaultOrderUnitPrice), updated.UnitPrice)
	assert.Equal(t, model.OrderStateOption, updated.State)
}

func TestGateway_DecodeFailure(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"state":7}`))
	})

	_, err := g.GetByID(context.Background(), "1")

	assertTransportError(t, err, 0, model.ErrGenericMessage)
}

func TestGateway_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	g := NewOrders(retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{}), baseURL, nil)

	_, err := g.ListAll(context.Background())

	var tErr *model.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, 0, tErr.Status)
	assert.NotEmpty(t, tErr.Message)
	assert.NotContains(t, tErr.Message, baseURL)
}

type nilDoer struct{}

func (nilDoer) Do(context.Context, *http.Request) (*http.Response, error) {
	return nil, nil
}

func TestGateway_GenericFallback(t *testing.T) {
	g := NewProducts(nilDoer{}, "http://api", nil)

	_, err := g.ListAll(context.Background())

	assertTransportError(t, err, 0, model.ErrGenericMessage)
}

func TestProducts_UpdateState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/p1", r.URL.Path)
		io.Copy(w, r.Body)
	}))
	defer server.Close()

	g := NewProducts(retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{}), server.URL, nil)

	product := model.DefaultProduct().WithID("p1")
	product.Ref = "REF"

	updated, err := g.UpdateState(context.Background(), product, model.ProductStateInactive)

	require.NoError(t, err)
	assert.Equal(t, model.ProductStateInactive, updated.State)
	assert.Equal(t, "REF", updated.Ref)
}

func TestGateway_PathEscapesID(t *testing.T) {
	g, _ := newOrdersGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/a%2Fb", r.URL.RawPath)
		w.Write([]byte(`{"id":"a/b"}`))
	})

	order, err := g.GetByID(context.Background(), "a/b")

	require.NoError(t, err)
	assert.Equal(t, "a/b", order.ID)
}
