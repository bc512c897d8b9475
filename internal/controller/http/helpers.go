package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ibeloyar/backoffice/internal/model"
	"go.uber.org/zap"
)

// readBody - читает и парсит JSON тело запроса в структуру T
func readBody[T any](r *http.Request) (T, error) {
	var body T

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	if !strings.HasPrefix(contentType, "application/json") {
		return body, fmt.Errorf("failed to read request body: unsupported content type %s", contentType)
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return body, fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return body, fmt.Errorf("failed to read request body %s: %w", contentType, err)
	}

	return body, nil
}

// writeJSON - записывает ответ в формате JSON и добавляет заголовок Content-Type: application/json
func writeJSON(w http.ResponseWriter, lg *zap.SugaredLogger, data interface{}, statusCode int) {
	response, err := json.Marshal(data)
	if err != nil {
		lg.Errorf("failed to marshal response: %v", err)
		writeRawError(w, http.StatusInternalServerError, model.ErrInternalServerMessage)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

// writeError - ошибки всегда отдаются как {"code":..,"message":..}
func writeError(w http.ResponseWriter, lg *zap.SugaredLogger, apiErr *model.APIError) {
	if apiErr.Code >= http.StatusInternalServerError {
		lg.Errorf("request failed: %d %s", apiErr.Code, apiErr.Message)
	}

	writeJSON(w, lg, apiErr, apiErr.Code)
}

func writeRawError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"code":%d,"message":%q}`, code, message)
}
