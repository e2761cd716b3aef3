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

// CharacterRepository представляет репозиторий для работы с персонажами
// и их весом
type CharacterRepository struct {
	resilientDB
}

// NewCharacterRepository создает новый экземпляр CharacterRepository
func NewCharacterRepository(db *gorm.DB, logger *zap.Logger, health *database.HealthChecker) *CharacterRepository {
	return &CharacterRepository{
		resilientDB: resilientDB{db: db, logger: logger, health: health},
	}
}

// GetAll получает всех персонажей вместе со связями
func (r *CharacterRepository) GetAll(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	err := r.read(ctx, "get_characters", func(tx *gorm.DB) error {
		return tx.
			Preload("Weight").
			Preload("HomeWorld").
			Preload("UsersFavorites.User").
			Find(&characters).Error
	})
	if err != nil {
		return nil, err
	}
	return characters, nil
}

// GetByID получает персонажа по ID вместе со связями
func (r *CharacterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	err := r.read(ctx, "get_character_by_id", func(tx *gorm.DB) error {
		return tx.
			Preload("Weight").
			Preload("HomeWorld").
			Preload("UsersFavorites.User").
			First(&character, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &character, nil
}

// GetByName получает персонажа по имени
func (r *CharacterRepository) GetByName(ctx context.Context, name string) (*models.Character, error) {
	var character models.Character
	err := r.read(ctx, "get_character_by_name", func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).First(&character).Error
	})
	if err != nil {
		return nil, err
	}
	return &character, nil
}

// Create создает нового персонажа вместе с весом, если он задан.
// Проверка уникальности имени выполняется внутри транзакции.
func (r *CharacterRepository) Create(ctx context.Context, character *models.Character) error {
	return r.write(ctx, "create_character", func(tx *gorm.DB) error {
		var existing models.Character
		result := tx.Where("name = ?", character.Name).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Name already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		// Связанный вес создается той же операцией
		return tx.Create(character).Error
	})
}

// Update сохраняет измененного персонажа, повторно проверяя уникальность
// имени; вес создается при первом появлении и далее обновляется на месте
func (r *CharacterRepository) Update(ctx context.Context, character *models.Character) error {
	return r.write(ctx, "update_character", func(tx *gorm.DB) error {
		var existing models.Character
		result := tx.Where("name = ? AND id <> ?", character.Name, character.ID).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Name already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if err := tx.Omit(clause.Associations).Save(character).Error; err != nil {
			return err
		}

		if character.Weight != nil {
			character.Weight.CharacterID = character.ID
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(character.Weight).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete удаляет персонажа вместе с весом и записями избранного
func (r *CharacterRepository) Delete(ctx context.Context, id uint) error {
	return r.write(ctx, "delete_character", func(tx *gorm.DB) error {
		var character models.Character
		if err := tx.First(&character, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Character not found")
			}
			return err
		}

		if err := tx.Where("character_id = ?", id).Delete(&models.Weight{}).Error; err != nil {
			return err
		}

		if err := tx.Where("character_id = ?", id).Delete(&models.CharacterFavorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Character{}, id).Error
	})
}
