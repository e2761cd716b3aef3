package service

import (
	"context"

	"HolocronCatalogService/internal/models"
)

// UserRepositoryInterface описывает интерфейс для работы с репозиторием
// пользователей и их избранного
type UserRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	GetCharacterFavorites(ctx context.Context, userID uint) ([]models.CharacterFavorite, error)
	AddCharacterFavorite(ctx context.Context, userID, characterID uint) error
	RemoveCharacterFavorite(ctx context.Context, userID, characterID uint) error
	GetPlanetFavorites(ctx context.Context, userID uint) ([]models.PlanetFavorite, error)
	AddPlanetFavorite(ctx context.Context, userID, planetID uint) error
	RemovePlanetFavorite(ctx context.Context, userID, planetID uint) error
}

// CharacterRepositoryInterface описывает интерфейс для работы с репозиторием персонажей
type CharacterRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Character, error)
	GetByID(ctx context.Context, id uint) (*models.Character, error)
	GetByName(ctx context.Context, name string) (*models.Character, error)
	Create(ctx context.Context, character *models.Character) error
	Update(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, id uint) error
}

// PlanetRepositoryInterface описывает интерфейс для работы с репозиторием планет
type PlanetRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Planet, error)
	GetByID(ctx context.Context, id uint) (*models.Planet, error)
	GetByName(ctx context.Context, name string) (*models.Planet, error)
	Create(ctx context.Context, planet *models.Planet) error
	Update(ctx context.Context, planet *models.Planet) error
	Delete(ctx context.Context, id uint) error
}
