package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
	"github.com/gordon0907/ark-tribe-log/internal/response"
)

// SourceHandler describes the registered save source types.
type SourceHandler struct {
	Registry *sources.Registry
}

// ListTypes returns registered source type names (GET /sources/types).
func (h *SourceHandler) ListTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"types": h.Registry.Types()})
}

// GetAllTypesInfo returns the fields of every source type (GET /sources/info).
func (h *SourceHandler) GetAllTypesInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"types": h.Registry.TypesInfo()})
}

// GetTypeInfo returns the fields of one source type (GET /sources/types/:type).
func (h *SourceHandler) GetTypeInfo(c echo.Context) error {
	info, err := h.Registry.TypeInfo(c.Param("type"))
	if errors.Is(err, sources.ErrUnknownType) {
		return response.NotFound(c, "unknown source type", err.Error())
	}
	if err != nil {
		return response.InternalError(c, "source type lookup failed", err.Error())
	}
	return c.JSON(http.StatusOK, info)
}
