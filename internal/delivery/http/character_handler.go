package http

import (
	"net/http"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CharacterHandler представляет обработчик HTTP запросов персонажей
type CharacterHandler struct {
	service service.CharacterServiceInterface
	logger  *zap.Logger
}

// NewCharacterHandler создает новый экземпляр CharacterHandler
func NewCharacterHandler(service service.CharacterServiceInterface, logger *zap.Logger) *CharacterHandler {
	return &CharacterHandler{
		service: service,
		logger:  logger,
	}
}

// GetCharacters возвращает всех персонажей
func (h *CharacterHandler) GetCharacters(c *gin.Context) {
	characters, err := h.service.GetCharacters(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, characters)
}

// GetCharacter возвращает персонажа по ID
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	id, ok := parseID(c, "character_id", "Character not found")
	if !ok {
		return
	}

	character, err := h.service.GetCharacter(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, character)
}

// CreateCharacter создает нового персонажа
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	var req models.CharacterRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	character, err := h.service.CreateCharacter(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, character)
}

// UpdateCharacter частично обновляет персонажа
func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	id, ok := parseID(c, "character_id", "Character not found")
	if !ok {
		return
	}

	var req models.CharacterRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	character, err := h.service.UpdateCharacter(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, character)
}

// DeleteCharacter удаляет персонажа
func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	id, ok := parseID(c, "character_id", "Character not found")
	if !ok {
		return
	}

	if err := h.service.DeleteCharacter(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Character deleted successfully"})
}
