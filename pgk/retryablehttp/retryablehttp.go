package retryablehttp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

var ErrRetriesExhausted = errors.New("retries exhausted")

type RetryConfig struct {
	MaxRetries int           // Повторы после первой попытки (0 - без повторов)
	BaseDelay  time.Duration // Базовая задержка (по умолчанию 100ms)
	MaxDelay   time.Duration // Максимальная задержка (по умолчанию 5s)
	MaxJitter  time.Duration // Максимальный jitter (по умолчанию 100ms)

	HTTPClient *http.Client
}

type RetryableClient struct {
	client      *http.Client
	retryConfig RetryConfig
}

func NewRetryableClient(config RetryConfig) *RetryableClient {
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.BaseDelay == 0 {
		config.BaseDelay = 100 * time.Millisecond
	}
	if config.MaxDelay == 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.MaxJitter == 0 {
		config.MaxJitter = 100 * time.Millisecond
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &RetryableClient{
		client:      client,
		retryConfig: config,
	}
}

// isRetryable определяет, нужно ли делать retry
func (c *RetryableClient) isRetryable(resp *http.Response, err error) bool {
	if err != nil {
		// Сетевые ошибки всегда retry
		return true
	}

	if resp == nil {
		return false
	}

	statusCode := resp.StatusCode
	return statusCode == 0 ||
		(statusCode >= 500 && statusCode <= 599) ||
		statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusRequestTimeout
}

// Do выполняет запрос. Ответ последней попытки возвращается с открытым телом,
// чтобы вызывающий мог прочитать сообщение об ошибке сервера.
func (c *RetryableClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewind request body: %w", err)
			}
			req.Body = body
		}

		resp, err := c.client.Do(req)

		if err == nil && !c.isRetryable(resp, nil) {
			return resp, nil
		}

		if attempt == c.retryConfig.MaxRetries {
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				return nil, err
			}
			if c.retryConfig.MaxRetries > 0 {
				return resp, fmt.Errorf("%w after %d attempts: %s", ErrRetriesExhausted, attempt+1, resp.Status)
			}
			return resp, nil
		}

		// Закрываем тело ответа при retry
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}

		// Exponential backoff + jitter
		delay := c.backoffDelay(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, errors.New("unexpected error")
}

// backoffDelay вычисляет задержку с экспоненциальным ростом и jitter
func (c *RetryableClient) backoffDelay(attempt int) time.Duration {
	backoff := time.Duration(1<<uint(attempt)) * c.retryConfig.BaseDelay
	if backoff > c.retryConfig.MaxDelay {
		backoff = c.retryConfig.MaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(c.retryConfig.MaxJitter)))
	return backoff + jitter
}
