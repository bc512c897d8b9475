package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type ErrorClassification int

const (
	NonRetriable ErrorClassification = iota
	Retriable

	ErrIsExistCode = "23505"
)

type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code, ok := errorCode(err)
	if !ok {
		// По умолчанию считаем ошибку неповторяемой
		return NonRetriable
	}

	return classifyCode(code)
}

// IsUniqueViolation - нарушение уникального индекса (повторный ref товара)
func IsUniqueViolation(err error) bool {
	code, ok := errorCode(err)
	return ok && code == ErrIsExistCode
}

// errorCode достает SQLSTATE как из lib/pq, так и из pgx
func errorCode(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}

	return "", false
}

func classifyCode(code string) ErrorClassification {
	// Коды ошибок PostgreSQL: https://www.postgresql.org/docs/current/errcodes-appendix.html

	switch code {
	// Класс 08 - Ошибки соединения
	case "08000", "08001", "08003", "08004", "08006", "08007":
		return Retriable

	// Класс 40 - Откат транзакции
	case "40000", "40001", "40P01":
		return Retriable

	// Класс 57 - Ошибка оператора
	case "57P03":
		return Retriable

	// Класс 23 - Нарушение ограничений целостности
	case "23000", "23001", "23502", "23503", ErrIsExistCode, "23514":
		return NonRetriable
	}

	return NonRetriable
}
