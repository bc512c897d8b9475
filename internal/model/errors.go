package model

import (
	"errors"
	"fmt"
)

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	ErrInternalServerMessage     = "internal server error"
	ErrOrderNotFoundMessage      = "order not found"
	ErrProductNotFoundMessage    = "product not found"
	ErrProductRefExistMessage    = "product ref already exists"
	ErrOrderExistMessage         = "order already exists"
	ErrProductRefRequiredMessage = "product ref is required"
	ErrOrderUnitPriceMessage     = "unit price must not be negative"
	ErrOrderNbOfDaysMessage      = "number of days must be positive"
	ErrInvalidBodyMessage        = "invalid request body"

	// ErrGenericMessage - сообщение для пользователя, когда из ошибки нечего извлечь
	ErrGenericMessage = "Une erreur s'est produite"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// TransportError - единственный вид ошибки, который видят потребители шлюза
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

// DisplayMessage возвращает текст для показа пользователю
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}

	var tErr *TransportError
	if errors.As(err, &tErr) {
		if tErr.Message == "" {
			return ErrGenericMessage
		}
		return tErr.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return ErrGenericMessage
}
