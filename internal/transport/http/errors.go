package http

import (
	"errors"
	"net/http"

	cartapp "github.com/geministore/storefront/internal/cart/app"
	catalogapp "github.com/geministore/storefront/internal/catalog/app"
	checkoutapp "github.com/geministore/storefront/internal/checkout/app"
	checkoutdomain "github.com/geministore/storefront/internal/checkout/domain"
)

type errorBody struct {
	Code    string                      `json:"code"`
	Message string                      `json:"message"`
	Fields  []checkoutdomain.FieldError `json:"fields,omitempty"`
}

// statusFromError maps domain sentinels to HTTP status and a stable code
// string for clients.
func statusFromError(err error) (int, errorBody) {
	var verr *checkoutdomain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, errorBody{
			Code:    "VALIDATION_FAILED",
			Message: verr.Error(),
			Fields:  verr.Fields,
		}
	}

	switch {
	case errors.Is(err, catalogapp.ErrNotFound), errors.Is(err, checkoutapp.ErrNotFound):
		return http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, cartapp.ErrInvalidProduct),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrTermsNotAccepted):
		return http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()}
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusConflict, errorBody{Code: "EMPTY_CART", Message: err.Error()}
	case errors.Is(err, checkoutapp.ErrOrderInFlight):
		return http.StatusConflict, errorBody{Code: "ORDER_IN_FLIGHT", Message: err.Error()}
	case errors.Is(err, checkoutapp.ErrPaymentDeclined):
		// Transient and retryable; the draft and cart are untouched.
		return http.StatusPaymentRequired, errorBody{Code: "PAYMENT_DECLINED", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "internal error"}
	}
}
