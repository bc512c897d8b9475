package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestReadBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        io.Reader
		want        model.Product
		wantErr     string
	}{
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        strings.NewReader(`{"ref":"REF-1","description":"Audit"}`),
			want:        model.Product{Ref: "REF-1", Description: "Audit", State: model.DefaultProductState},
		},
		{
			name: "missing content type means json",
			body: strings.NewReader(`{"ref":"REF-2","state":0}`),
			want: model.Product{Ref: "REF-2", State: model.ProductStateInactive},
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        strings.NewReader(`{"ref":`),
			wantErr:     "failed to read request body application/json",
		},
		{
			name:        "form is not accepted",
			contentType: "application/x-www-form-urlencoded",
			body:        strings.NewReader("ref=REF-3"),
			wantErr:     "unsupported content type application/x-www-form-urlencoded",
		},
		{
			name:        "body read failure",
			contentType: "application/json",
			body:        brokenBody{},
			wantErr:     "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/products", tt.body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			got, err := readBody[model.Product](req)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadBody_OrderDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer":"Atos"}`))

	got, err := readBody[model.Order](req)

	require.NoError(t, err)
	assert.Equal(t, "Atos", got.Customer)
	assert.Equal(t, float64(model.DefaultOrderUnitPrice), got.UnitPrice)
	assert.Equal(t, model.DefaultOrderState, got.State)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	order := model.DefaultOrder().WithID("42")

	writeJSON(w, zap.NewNop().Sugar(), order, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, order, got)
}

func TestWriteJSON_MarshalFailure(t *testing.T) {
	w := httptest.NewRecorder()

	writeJSON(w, zap.NewNop().Sugar(), func() {}, http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":500,"message":"internal server error"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, zap.NewNop().Sugar(), &model.APIError{Code: http.StatusConflict, Message: model.ErrProductRefExistMessage})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":409,"message":"product ref already exists"}`, w.Body.String())
}
