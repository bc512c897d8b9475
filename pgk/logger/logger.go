package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type (
	responseData struct {
		status int
		size   int
	}

	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func New() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// LoggingMiddleware - логирует uri, метод, статус, размер ответа и длительность запроса.
// Если перед ним стоит middleware.RequestID, в строку попадает и id запроса.
func LoggingMiddleware(lg *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			lw := &loggingResponseWriter{
				ResponseWriter: w,
				responseData: &responseData{
					status: http.StatusOK,
					size:   0,
				},
			}

			next.ServeHTTP(lw, r)

			lg.Infof("request-> id: %s, uri: %s, method: %s, status: %d, size: %d, duration: %s",
				middleware.GetReqID(r.Context()),
				r.RequestURI,
				r.Method,
				lw.responseData.status,
				lw.responseData.size,
				time.Since(start),
			)
		})
	}
}
