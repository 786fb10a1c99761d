package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"surfcast-api/internal/domain/usecase/weather"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes forecast routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.POST("/locations/refresh", controller.RefreshAllStale)
	controller.api.POST("/locations/:id/refresh", controller.Refresh)
	controller.api.GET("/locations/:id/refresh", controller.RefreshState)
	controller.api.GET("/locations/:id/forecast", controller.Summary)
}

// Refresh godoc
// @Summary Refresh the forecast of a location
// @Description Fetches every provider and replaces the stored samples. Returns 202 while another refresh is running.
// @Tags forecast
// @Produce json
// @Param id path string true "Location id"
// @Success 200 {object} entity.SavedLocation
// @Success 202 {object} model.RefreshStatus "Refresh already in progress"
// @Failure 404 {object} map[string]string "Location not found"
// @Failure 502 {object} map[string]string "Forecast provider unavailable"
// @Router /locations/{id}/refresh [post]
func (controller *WeatherController) Refresh(c echo.Context) error {
	id := c.Param("id")

	refreshed, err := controller.useCase.RefreshLocation(c.Request().Context(), id)
	if errors.Is(err, weather.ErrRefreshInProgress) {
		return c.JSON(http.StatusAccepted, controller.useCase.RefreshState(id))
	}
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, refreshed)
}

// RefreshState godoc
// @Summary Refresh state of a location
// @Tags forecast
// @Produce json
// @Param id path string true "Location id"
// @Success 200 {object} model.RefreshStatus
// @Router /locations/{id}/refresh [get]
func (controller *WeatherController) RefreshState(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.RefreshState(c.Param("id")))
}

// Summary godoc
// @Summary Forecast summary of a location
// @Description Current sample, today's samples, next tide turning point, wind classification and timeline.
// @Description With fresh=true stale data is refreshed first; a failed refresh still returns the stored data.
// @Tags forecast
// @Produce json
// @Param id path string true "Location id"
// @Param fresh query bool false "Refresh stale data first" default(false)
// @Success 200 {object} model.ForecastSummary
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id}/forecast [get]
func (controller *WeatherController) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	summaryFn := controller.useCase.Summary
	if c.QueryParam("fresh") == "true" {
		summaryFn = controller.useCase.EnsureFresh
	}

	summary, err := summaryFn(ctx, id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// RefreshAllStale godoc
// @Summary Refresh every stale location
// @Description Runs in background; stale locations are enqueued or refreshed in process
// @Tags forecast
// @Produce json
// @Success 202 {object} map[string]string "Refresh of stale locations scheduled"
// @Router /locations/refresh [post]
func (controller *WeatherController) RefreshAllStale(c echo.Context) error {
	requestID := uuid.NewString()

	// Execute in a separate goroutine to avoid blocking the request
	go func() {
		if _, err := controller.useCase.RefreshAllStale(context.Background(), requestID); err != nil {
			log.Error(msg.GetMessage("forecast.refresh-all.failure"), zap.String("request_id", requestID), zap.Error(err))
		}
	}()

	return c.JSON(http.StatusAccepted, map[string]string{
		"message":   "Refresh of stale locations scheduled",
		"requestId": requestID,
	})
}
