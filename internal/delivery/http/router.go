package http

import (
	"HolocronCatalogService/internal/service"
	"HolocronCatalogService/pkg/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает маршрутизатор каталога со сквозными middleware:
// идентификатор запроса, метрики, восстановление после паник
func NewRouter(
	userService service.UserServiceInterface,
	characterService service.CharacterServiceInterface,
	planetService service.PlanetServiceInterface,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(
		server.TracingMiddleware(logger),
		server.MetricsMiddleware(),
		gin.Recovery(),
	)

	userHandler := NewUserHandler(userService, logger)
	characterHandler := NewCharacterHandler(characterService, logger)
	planetHandler := NewPlanetHandler(planetService, logger)

	users := router.Group("/users")
	{
		users.GET("", userHandler.GetUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:user_id", userHandler.GetUser)
		users.PUT("/:user_id", userHandler.UpdateUser)
		users.DELETE("/:user_id", userHandler.DeleteUser)

		users.POST("/:user_id/favorites/characters", userHandler.AddCharacterFavorite)
		users.DELETE("/:user_id/favorites/characters/:character_id", userHandler.RemoveCharacterFavorite)
		users.POST("/:user_id/favorites/planets", userHandler.AddPlanetFavorite)
		users.DELETE("/:user_id/favorites/planets/:planet_id", userHandler.RemovePlanetFavorite)
	}

	characters := router.Group("/characters")
	{
		characters.GET("", characterHandler.GetCharacters)
		characters.POST("", characterHandler.CreateCharacter)
		characters.GET("/:character_id", characterHandler.GetCharacter)
		characters.PUT("/:character_id", characterHandler.UpdateCharacter)
		characters.DELETE("/:character_id", characterHandler.DeleteCharacter)
	}

	planets := router.Group("/planets")
	{
		planets.GET("", planetHandler.GetPlanets)
		planets.POST("", planetHandler.CreatePlanet)
		planets.GET("/:planet_id", planetHandler.GetPlanet)
		planets.PUT("/:planet_id", planetHandler.UpdatePlanet)
		planets.DELETE("/:planet_id", planetHandler.DeletePlanet)
	}

	return router
}
