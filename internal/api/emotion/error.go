package emotion

import (
	"HealGolang/pkg/response"
	"net/http"
)

var (
	ErrDeviceUnavailable   = response.NewError(http.StatusServiceUnavailable, "camera unavailable")
	ErrClassification      = response.NewError(http.StatusUnprocessableEntity, "emotion classification failed")
	ErrInvalidProfile      = response.NewError(http.StatusBadRequest, "invalid detection profile")
	ErrLeaseLost           = response.NewError(http.StatusServiceUnavailable, "device lease lost")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
