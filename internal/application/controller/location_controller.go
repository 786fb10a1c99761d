package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"surfcast-api/internal/domain/gateway/queue"
	"surfcast-api/internal/domain/model"
	"surfcast-api/internal/domain/usecase/location"
	"surfcast-api/pkg/util/numberutils"
)

type LocationController struct {
	api      *echo.Group
	useCase  location.UseCase
	notifier queue.ChangeNotifier
}

func NewLocationController(api *echo.Group, useCase location.UseCase, notifier queue.ChangeNotifier) *LocationController {
	return &LocationController{api: api, useCase: useCase, notifier: notifier}
}

// InitLocationRoutes initializes saved location routes
func (controller *LocationController) InitLocationRoutes() {
	controller.api.GET("/locations", controller.List)
	controller.api.GET("/locations/previews", controller.Previews)
	controller.api.GET("/locations/changes", controller.StreamChanges)
	controller.api.PUT("/locations/order", controller.Reorder)
	controller.api.GET("/locations/:id", controller.Get)
	controller.api.POST("/locations", controller.Add)
	controller.api.DELETE("/locations/:id", controller.Delete)
	controller.api.PUT("/locations/:id/background", controller.ChangeBackground)
}

// List godoc
// @Summary List saved locations
// @Description Saved locations ordered by custom order, newest first on ties. size 0 returns every location.
// @Tags locations
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(0)
// @Success 200 {object} model.Page[entity.SavedLocation]
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /locations [get]
func (controller *LocationController) List(c echo.Context) error {
	page := numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	size := numberutils.ToIntWithDefault(c.QueryParam("size"), 0)

	locations, err := controller.useCase.List(c.Request().Context(), page, size)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}

// Get godoc
// @Summary Get a saved location
// @Tags locations
// @Produce json
// @Param id path string true "Location id"
// @Success 200 {object} entity.SavedLocation
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id} [get]
func (controller *LocationController) Get(c echo.Context) error {
	saved, err := controller.useCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Add godoc
// @Summary Save a location
// @Description Saves a location at the end of the list. Forecast data is loaded by the next refresh.
// @Tags locations
// @Accept json
// @Produce json
// @Param location body model.AddLocationDTO true "Location"
// @Success 201 {object} entity.SavedLocation
// @Failure 400 {object} map[string]string "Invalid location"
// @Failure 409 {object} map[string]string "Location already saved"
// @Router /locations [post]
func (controller *LocationController) Add(c echo.Context) error {
	var dto model.AddLocationDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	saved, err := controller.useCase.Add(c.Request().Context(), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Delete godoc
// @Summary Delete a saved location
// @Tags locations
// @Param id path string true "Location id"
// @Success 204 "Location deleted"
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id} [delete]
func (controller *LocationController) Delete(c echo.Context) error {
	if err := controller.useCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Reorder godoc
// @Summary Reorder saved locations
// @Description Listed ids take positions 0..n-1, unlisted locations follow in their current order
// @Tags locations
// @Accept json
// @Produce json
// @Param order body model.ReorderLocationsDTO true "Location ids in display order"
// @Success 200 {array} entity.SavedLocation
// @Failure 400 {object} map[string]string "Invalid order"
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/order [put]
func (controller *LocationController) Reorder(c echo.Context) error {
	var dto model.ReorderLocationsDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	ordered, err := controller.useCase.Reorder(c.Request().Context(), dto.IDs)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, ordered)
}

// ChangeBackground godoc
// @Summary Change the background of a saved location
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location id"
// @Param background body model.ChangeBackgroundDTO true "Background variant"
// @Success 200 {object} entity.SavedLocation
// @Failure 400 {object} map[string]string "Invalid background"
// @Failure 404 {object} map[string]string "Location not found"
// @Router /locations/{id}/background [put]
func (controller *LocationController) ChangeBackground(c echo.Context) error {
	var dto model.ChangeBackgroundDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	saved, err := controller.useCase.ChangeBackground(c.Request().Context(), c.Param("id"), dto.Background)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Previews godoc
// @Summary Preview locations
// @Description Sample locations for empty states. They are never saved.
// @Tags locations
// @Produce json
// @Success 200 {array} entity.SavedLocation
// @Router /locations/previews [get]
func (controller *LocationController) Previews(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.PreviewLocations())
}

// StreamChanges godoc
// @Summary Stream location changes
// @Description Server-Sent Events, one event per successful write
// @Tags locations
// @Produce text/event-stream
// @Success 200 {object} model.LocationChange
// @Router /locations/changes [get]
func (controller *LocationController) StreamChanges(c echo.Context) error {
	ctx := c.Request().Context()
	changes, err := controller.notifier.Subscribe(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(change)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", change.Type, payload); err != nil {
				return err
			}
			res.Flush()
		}
	}
}
