// Package server wires the Echo instance: middleware, template renderer and
// routes.
package server

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/flightfinder/internal/handler"
)

func New(searchHandler *handler.SearchHandler) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	e.Renderer = renderer

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	e.GET("/", searchHandler.Page)
	e.POST("/search", searchHandler.Submit)

	api := e.Group("/api/v1")
	api.GET("/flights/search", searchHandler.Search)
	e.GET("/health", handler.HealthHandler)

	return e, nil
}
