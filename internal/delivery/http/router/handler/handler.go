// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"chirp/internal/delivery/http/response"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/pagination"

	"github.com/labstack/echo/v4"
)

// pathID parses an int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid path parameter: " + name)
	}

	return id, nil
}

// listQuery parses the filter/pagination grammar from the query string.
func listQuery(c echo.Context) (*pagination.Query, error) {
	return pagination.Parse(c.QueryParams())
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
