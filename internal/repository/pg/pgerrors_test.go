package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify_NotPostgres(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetriable, classifier.Classify(nil))
	assert.Equal(t, NonRetriable, classifier.Classify(errors.New("custom error")))
}

func TestPostgresErrorClassifier_Classify_Codes(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	tests := []struct {
		name  string
		codes []string
		want  ErrorClassification
	}{
		{"connection", []string{"08000", "08001", "08003", "08004", "08006", "08007"}, Retriable},
		{"transaction", []string{"40000", "40001", "40P01"}, Retriable},
		{"operator", []string{"57P03"}, Retriable},
		{"data", []string{"22000", "22004"}, NonRetriable},
		{"integrity", []string{"23000", "23001", "23502", "23503", ErrIsExistCode, "23514"}, NonRetriable},
		{"syntax", []string{"42601", "42P01", "42703", "42P02", "42P03"}, NonRetriable},
		{"unknown", []string{"00000", "12345", "ABCDE"}, NonRetriable},
	}

	for _, tt := range tests {
		for _, code := range tt.codes {
			t.Run(tt.name+"_pq_"+code, func(t *testing.T) {
				assert.Equal(t, tt.want, classifier.Classify(&pq.Error{Code: pq.ErrorCode(code)}))
			})
			t.Run(tt.name+"_pgx_"+code, func(t *testing.T) {
				assert.Equal(t, tt.want, classifier.Classify(&pgconn.PgError{Code: code}))
			})
		}
	}
}

func TestPostgresErrorClassifier_Classify_Wrapped(t *testing.T) {
	classifier := NewPostgresErrorClassifier()
	err := fmt.Errorf("list orders: %w", &pgconn.PgError{Code: "40001"})

	assert.Equal(t, Retriable, classifier.Classify(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: ErrIsExistCode}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: ErrIsExistCode})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
	assert.False(t, IsUniqueViolation(nil))
}
