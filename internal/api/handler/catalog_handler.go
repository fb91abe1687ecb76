package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriscan/platform/internal/core/ports"
)

// CatalogHandler serves the read-only plant and disease catalog.
type CatalogHandler struct {
	catalog ports.CatalogRepository
}

func NewCatalogHandler(catalog ports.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListPlants handles GET /plants.
//
// @Summary      List supported plant types
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /plants [get]
func (h *CatalogHandler) ListPlants(c echo.Context) error {
	plants, err := h.catalog.Plants(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plants)
}

// GetPlant handles GET /plants/:id.
//
// @Summary      Get a plant type by id
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plant type id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /plants/{id} [get]
func (h *CatalogHandler) GetPlant(c echo.Context) error {
	plant, err := h.catalog.PlantByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plant)
}

// ListDiseases handles GET /diseases, optionally filtered by plant type.
//
// @Summary      List known diseases
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        plantTypeId  query  string  false  "Plant type filter"
// @Success      200  {object}  envelope
// @Router       /diseases [get]
func (h *CatalogHandler) ListDiseases(c echo.Context) error {
	diseases, err := h.catalog.Diseases(c.Request().Context(), c.QueryParam("plantTypeId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, diseases)
}

// GetDisease handles GET /diseases/:id.
//
// @Summary      Get a disease by id
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Disease id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /diseases/{id} [get]
func (h *CatalogHandler) GetDisease(c echo.Context) error {
	disease, err := h.catalog.DiseaseByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, disease)
}
