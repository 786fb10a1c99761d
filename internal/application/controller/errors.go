package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/forecast"
	"surfcast-api/internal/domain/model"
	"surfcast-api/internal/domain/usecase/weather"
	"surfcast-api/pkg/log"
)

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrLocationExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, weather.ErrRefreshInProgress):
		return http.StatusAccepted
	case errors.Is(err, forecast.ErrProviderUnavailable), errors.Is(err, forecast.ErrEmptyResult):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Errorf("request %s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
