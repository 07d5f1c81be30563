package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps the sentinel error taxonomy onto HTTP statuses.
// Configuration errors come back as 503 so monitoring can tell a disabled
// channel apart from caller mistakes.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrChannelNotConfigured):
		RespondError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrVendorNotFound),
		errors.Is(err, ErrStockItemNotFound),
		errors.Is(err, ErrMoneyAccountNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrPlanInactive),
		errors.Is(err, ErrPriceBelowMinimum),
		errors.Is(err, ErrPhoneRequired),
		errors.Is(err, ErrInvalidPhoneNumber),
		errors.Is(err, ErrUnknownPaymentType),
		errors.Is(err, ErrSubscriptionMissing),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrInsufficientFunds):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrIneligibleAccount):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrTransactionFinalized),
		errors.Is(err, ErrWrongTransactionType),
		errors.Is(err, ErrInvalidTransition):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
