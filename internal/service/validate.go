package service

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/ibeloyar/backoffice/internal/model"
)

// validateID - идентификаторы выдает сервер, поэтому не-UUID заведомо не существует
func validateID(id, notFoundMessage string) *model.APIError {
	if err := uuid.Validate(id); err != nil {
		return &model.APIError{
			Code:    http.StatusNotFound,
			Message: notFoundMessage,
		}
	}

	return nil
}

func validateOrder(order model.Order) *model.APIError {
	if err := order.Validate(); err != nil {
		return &model.APIError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

func validateProduct(product model.Product) *model.APIError {
	if err := product.Validate(); err != nil {
		return &model.APIError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}
