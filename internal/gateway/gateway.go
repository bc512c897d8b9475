package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ibeloyar/backoffice/internal/model"
	"go.uber.org/zap"
)

const maxErrorBodySize = 1 << 20

// Record - сущность с идентификатором, назначаемым сервером
type Record interface {
	GetID() string
}

type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Gateway - HTTP обертка над REST ресурсом одной сущности.
// Любая ошибка возвращается как *model.TransportError.
type Gateway[T Record] struct {
	client  Doer
	baseURL string
	path    string
	lg      *zap.SugaredLogger
}

func New[T Record](client Doer, baseURL, path string, lg *zap.SugaredLogger) *Gateway[T] {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Gateway[T]{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    "/" + strings.Trim(path, "/"),
		lg:      lg,
	}
}

func (g *Gateway[T]) ListAll(ctx context.Context) ([]T, error) {
	items, err := send[[]T](ctx, g, http.MethodGet, g.collectionURL(), nil)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (g *Gateway[T]) GetByID(ctx context.Context, id string) (T, error) {
	if id == "" {
		var zero T
		return zero, errIDRequired
	}

	return send[T](ctx, g, http.MethodGet, g.itemURL(id), nil)
}

// Create - идентификатор назначает сервер и возвращает каноническую запись
func (g *Gateway[T]) Create(ctx context.Context, record T) (T, error) {
	return send[T](ctx, g, http.MethodPost, g.collectionURL(), record)
}

func (g *Gateway[T]) Update(ctx context.Context, record T) (T, error) {
	if record.GetID() == "" {
		var zero T
		return zero, errIDRequired
	}

	return send[T](ctx, g, http.MethodPut, g.itemURL(record.GetID()), record)
}

// Delete возвращает представление удаленной записи (обычно игнорируется)
func (g *Gateway[T]) Delete(ctx context.Context, id string) (T, error) {
	if id == "" {
		var zero T
		return zero, errIDRequired
	}

	return send[T](ctx, g, http.MethodDelete, g.itemURL(id), nil)
}

func (g *Gateway[T]) collectionURL() string {
	return g.baseURL + g.path
}

func (g *Gateway[T]) itemURL(id string) string {
	return g.baseURL + g.path + "/" + url.PathEscape(id)
}

var errIDRequired = &model.TransportError{Message: "record id is required"}

func send[R any, T Record](ctx context.Context, g *Gateway[T], method, target string, payload any) (R, error) {
	var result R

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			g.lg.Errorf("gateway %s %s: encode body: %v", method, target, err)
			return result, &model.TransportError{Message: model.ErrGenericMessage}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		g.lg.Errorf("gateway %s %s: build request: %v", method, target, err)
		return result, &model.TransportError{Message: model.ErrGenericMessage}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(ctx, req)
	if resp == nil {
		if err == nil {
			err = errors.New(model.ErrGenericMessage)
		}
		g.lg.Errorf("gateway %s %s: %v", method, target, err)
		return result, &model.TransportError{Message: transportMessage(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tErr := &model.TransportError{
			Status:  resp.StatusCode,
			Message: statusMessage(resp),
		}
		g.lg.Errorf("gateway %s %s: %v", method, target, tErr)
		return result, tErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		g.lg.Errorf("gateway %s %s: read body: %v", method, target, err)
		return result, &model.TransportError{Message: transportMessage(err)}
	}

	// пустое тело разбирается как null, чтобы UnmarshalJSON записи применил значения по умолчанию
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("null")
	}

	if err := json.Unmarshal(data, &result); err != nil {
		g.lg.Errorf("gateway %s %s: decode body: %v", method, target, err)
		return result, &model.TransportError{Message: model.ErrGenericMessage}
	}

	return result, nil
}

// statusMessage - сообщение из тела {"message": ...}, иначе текст со статусом
func statusMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var apiErr model.APIError
	if err := json.Unmarshal(data, &apiErr); err == nil && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}

	return fmt.Sprintf("request failed with status code %d", resp.StatusCode)
}

func transportMessage(err error) string {
	if err == nil {
		return model.ErrGenericMessage
	}

	var uErr *url.Error
	if errors.As(err, &uErr) && uErr.Err != nil {
		err = uErr.Err
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return model.ErrGenericMessage
}
