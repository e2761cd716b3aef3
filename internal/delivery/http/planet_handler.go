package http

import (
	"net/http"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanetHandler представляет обработчик HTTP запросов планет
type PlanetHandler struct {
	service service.PlanetServiceInterface
	logger  *zap.Logger
}

// NewPlanetHandler создает новый экземпляр PlanetHandler
func NewPlanetHandler(service service.PlanetServiceInterface, logger *zap.Logger) *PlanetHandler {
	return &PlanetHandler{
		service: service,
		logger:  logger,
	}
}

// GetPlanets возвращает все планеты
func (h *PlanetHandler) GetPlanets(c *gin.Context) {
	planets, err := h.service.GetPlanets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, planets)
}

// GetPlanet возвращает планету по ID
func (h *PlanetHandler) GetPlanet(c *gin.Context) {
	id, ok := parseID(c, "planet_id", "Planet not found")
	if !ok {
		return
	}

	planet, err := h.service.GetPlanet(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, planet)
}

// CreatePlanet создает новую планету
func (h *PlanetHandler) CreatePlanet(c *gin.Context) {
	var req models.PlanetRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	planet, err := h.service.CreatePlanet(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, planet)
}

// UpdatePlanet частично обновляет планету
func (h *PlanetHandler) UpdatePlanet(c *gin.Context) {
	id, ok := parseID(c, "planet_id", "Planet not found")
	if !ok {
		return
	}

	var req models.PlanetRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	planet, err := h.service.UpdatePlanet(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, planet)
}

// DeletePlanet удаляет планету
func (h *PlanetHandler) DeletePlanet(c *gin.Context) {
	id, ok := parseID(c, "planet_id", "Planet not found")
	if !ok {
		return
	}

	if err := h.service.DeletePlanet(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Planet deleted successfully"})
}
