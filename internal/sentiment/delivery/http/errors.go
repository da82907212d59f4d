package http

import (
	"errors"
	"net/http"

	"golang-stock-sentiment/internal/sentiment/dto"
	"golang-stock-sentiment/internal/sentiment/service"

	"github.com/labstack/echo/v4"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidTicker), errors.Is(err, service.ErrInvalidText):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, dto.ErrorResponse{Error: message})
}

func serviceError(c echo.Context, err error) error {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		return errorJSON(c, status, "Failed to analyze sentiment")
	case http.StatusServiceUnavailable:
		return errorJSON(c, status, "Model is not ready.")
	default:
		return errorJSON(c, status, err.Error())
	}
}
