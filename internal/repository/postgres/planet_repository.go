package postgres

import (
	"context"
	"errors"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/pkg/apperrors"
	"HolocronCatalogService/pkg/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanetRepository представляет репозиторий для работы с планетами
type PlanetRepository struct {
	resilientDB
}

// NewPlanetRepository создает новый экземпляр PlanetRepository
func NewPlanetRepository(db *gorm.DB, logger *zap.Logger, health *database.HealthChecker) *PlanetRepository {
	return &PlanetRepository{
		resilientDB: resilientDB{db: db, logger: logger, health: health},
	}
}

// GetAll получает все планеты вместе со связями
func (r *PlanetRepository) GetAll(ctx context.Context) ([]models.Planet, error) {
	var planets []models.Planet
	err := r.read(ctx, "get_planets", func(tx *gorm.DB) error {
		return tx.
			Preload("Characters").
			Preload("UsersFavorites.User").
			Find(&planets).Error
	})
	if err != nil {
		return nil, err
	}
	return planets, nil
}

// GetByID получает планету по ID вместе со связями
func (r *PlanetRepository) GetByID(ctx context.Context, id uint) (*models.Planet, error) {
	var planet models.Planet
	err := r.read(ctx, "get_planet_by_id", func(tx *gorm.DB) error {
		return tx.
			Preload("Characters").
			Preload("UsersFavorites.User").
			First(&planet, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &planet, nil
}

// GetByName получает планету по имени
func (r *PlanetRepository) GetByName(ctx context.Context, name string) (*models.Planet, error) {
	var planet models.Planet
	err := r.read(ctx, "get_planet_by_name", func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).First(&planet).Error
	})
	if err != nil {
		return nil, err
	}
	return &planet, nil
}

// Create создает новую планету. Проверка уникальности имени выполняется
// внутри транзакции.
func (r *PlanetRepository) Create(ctx context.Context, planet *models.Planet) error {
	return r.write(ctx, "create_planet", func(tx *gorm.DB) error {
		var existing models.Planet
		result := tx.Where("name = ?", planet.Name).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Name already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		return tx.Create(planet).Error
	})
}

// Update сохраняет измененную планету, повторно проверяя уникальность имени
func (r *PlanetRepository) Update(ctx context.Context, planet *models.Planet) error {
	return r.write(ctx, "update_planet", func(tx *gorm.DB) error {
		var existing models.Planet
		result := tx.Where("name = ? AND id <> ?", planet.Name, planet.ID).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Name already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		return tx.Omit(clause.Associations).Save(planet).Error
	})
}

// Delete удаляет планету вместе с записями избранного; у персонажей,
// ссылавшихся на планету, родной мир обнуляется в той же транзакции
func (r *PlanetRepository) Delete(ctx context.Context, id uint) error {
	return r.write(ctx, "delete_planet", func(tx *gorm.DB) error {
		var planet models.Planet
		if err := tx.First(&planet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Planet not found")
			}
			return err
		}

		if err := tx.Model(&models.Character{}).
			Where("home_world_id = ?", id).
			Update("home_world_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("planet_id = ?", id).Delete(&models.PlanetFavorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Planet{}, id).Error
	})
}
