package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bufferedLogger пишет в буфер консольным форматом
func bufferedLogger() (*zap.SugaredLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	return zap.New(core).Sugar(), &buf
}

func TestNew(t *testing.T) {
	lg, err := New()

	require.NoError(t, err)
	require.NotNil(t, lg)
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		next     http.HandlerFunc
		wantBody string
		wantLog  []string
	}{
		{
			name:   "created with body",
			method: http.MethodPost,
			target: "/orders",
			next: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"id":"1"}`))
			},
			wantBody: `{"id":"1"}`,
			wantLog:  []string{"request->", "uri: /orders", "method: POST", "status: 201", "size: 10", "duration:"},
		},
		{
			name:   "implicit 200",
			method: http.MethodGet,
			target: "/ping",
			next: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("ok"))
			},
			wantBody: "ok",
			wantLog:  []string{"status: 200", "size: 2"},
		},
		{
			name:   "no content",
			method: http.MethodDelete,
			target: "/products/1",
			next: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			wantLog: []string{"method: DELETE", "status: 204", "size: 0"},
		},
		{
			name:   "several writes are summed",
			method: http.MethodGet,
			target: "/orders?refresh=1",
			next: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("hello"))
				w.Write([]byte("world"))
			},
			wantBody: "helloworld",
			wantLog:  []string{"uri: /orders?refresh=1", "size: 10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := bufferedLogger()
			handler := LoggingMiddleware(lg)(tt.next)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantBody, w.Body.String())
			for _, part := range tt.wantLog {
				assert.Contains(t, buf.String(), part)
			}
		})
	}
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	lg, buf := bufferedLogger()
	handler := middleware.RequestID(LoggingMiddleware(lg)(http.NotFoundHandler()))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "id: req-42")
	assert.Contains(t, buf.String(), "status: 404")
}

func TestLoggingResponseWriter(t *testing.T) {
	recorder := httptest.NewRecorder()
	rw := &loggingResponseWriter{
		ResponseWriter: recorder,
		responseData:   &responseData{status: http.StatusOK},
	}

	rw.WriteHeader(http.StatusBadRequest)
	size, err := rw.Write([]byte("test"))

	require.NoError(t, err)
	assert.Equal(t, 4, size)
	assert.Equal(t, 4, rw.responseData.size)
	assert.Equal(t, http.StatusBadRequest, rw.responseData.status)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "test", recorder.Body.String())
}
