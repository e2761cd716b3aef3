package http

import (
	"net/http"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler представляет обработчик HTTP запросов пользователей и избранного
type UserHandler struct {
	service service.UserServiceInterface
	logger  *zap.Logger
}

// NewUserHandler создает новый экземпляр UserHandler
func NewUserHandler(service service.UserServiceInterface, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// GetUsers возвращает всех пользователей
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser возвращает пользователя по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser создает нового пользователя
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser частично обновляет пользователя
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser удаляет пользователя
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// AddCharacterFavorite добавляет персонажа в избранное пользователя;
// в ответе возвращается обновленный список избранных персонажей
func (h *UserHandler) AddCharacterFavorite(c *gin.Context) {
	id, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}

	var req models.CharacterFavoriteRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	items, err := h.service.AddCharacterFavorite(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, items)
}

// RemoveCharacterFavorite удаляет персонажа из избранного пользователя
func (h *UserHandler) RemoveCharacterFavorite(c *gin.Context) {
	userID, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}
	characterID, ok := parseID(c, "character_id", "Character not found")
	if !ok {
		return
	}

	items, err := h.service.RemoveCharacterFavorite(c.Request.Context(), userID, characterID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddPlanetFavorite добавляет планету в избранное пользователя
func (h *UserHandler) AddPlanetFavorite(c *gin.Context) {
	id, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}

	var req models.PlanetFavoriteRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, err)
		return
	}

	items, err := h.service.AddPlanetFavorite(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, items)
}

// RemovePlanetFavorite удаляет планету из избранного пользователя
func (h *UserHandler) RemovePlanetFavorite(c *gin.Context) {
	userID, ok := parseID(c, "user_id", "User not found")
	if !ok {
		return
	}
	planetID, ok := parseID(c, "planet_id", "Planet not found")
	if !ok {
		return
	}

	items, err := h.service.RemovePlanetFavorite(c.Request.Context(), userID, planetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
