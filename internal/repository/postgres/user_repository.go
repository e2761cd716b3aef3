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

// UserRepository представляет репозиторий для работы с пользователями
// и их избранным
type UserRepository struct {
	resilientDB
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *gorm.DB, logger *zap.Logger, health *database.HealthChecker) *UserRepository {
	return &UserRepository{
		resilientDB: resilientDB{db: db, logger: logger, health: health},
	}
}

// GetAll получает всех пользователей вместе с избранным
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.read(ctx, "get_users", func(tx *gorm.DB) error {
		return tx.
			Preload("CharactersFavorites.Character").
			Preload("PlanetsFavorites.Planet").
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID получает пользователя по ID вместе с избранным
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.read(ctx, "get_user_by_id", func(tx *gorm.DB) error {
		return tx.
			Preload("CharactersFavorites.Character").
			Preload("PlanetsFavorites.Planet").
			First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername получает пользователя по имени
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.read(ctx, "get_user_by_username", func(tx *gorm.DB) error {
		return tx.Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail получает пользователя по адресу электронной почты
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.read(ctx, "get_user_by_email", func(tx *gorm.DB) error {
		return tx.Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создает нового пользователя. Проверки уникальности выполняются
// внутри транзакции: хранилище остается последней инстанцией при гонках.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.write(ctx, "create_user", func(tx *gorm.DB) error {
		var existing models.User

		result := tx.Where("username = ?", user.Username).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Username already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		result = tx.Where("email = ?", user.Email).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Email already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		return tx.Create(user).Error
	})
}

// Update сохраняет измененного пользователя, повторно проверяя уникальность
// имени и почты в той же транзакции
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.write(ctx, "update_user", func(tx *gorm.DB) error {
		var existing models.User

		result := tx.Where("username = ? AND id <> ?", user.Username, user.ID).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Username already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		result = tx.Where("email = ? AND id <> ?", user.Email, user.ID).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Email already exists")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		// Связи избранного изменяются только через собственные операции
		return tx.Omit(clause.Associations).Save(user).Error
	})
}

// Delete удаляет пользователя вместе со всеми записями избранного
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.write(ctx, "delete_user", func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("User not found")
			}
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.CharacterFavorite{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.PlanetFavorite{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// GetCharacterFavorites получает избранных персонажей пользователя
func (r *UserRepository) GetCharacterFavorites(ctx context.Context, userID uint) ([]models.CharacterFavorite, error) {
	var favorites []models.CharacterFavorite
	err := r.read(ctx, "get_character_favorites", func(tx *gorm.DB) error {
		return tx.
			Where("user_id = ?", userID).
			Preload("Character").
			Find(&favorites).Error
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddCharacterFavorite добавляет персонажа в избранное пользователя.
// Составной первичный ключ и проверка в транзакции не допускают дубликатов.
func (r *UserRepository) AddCharacterFavorite(ctx context.Context, userID, characterID uint) error {
	return r.write(ctx, "add_character_favorite", func(tx *gorm.DB) error {
		var existing models.CharacterFavorite
		result := tx.Where("user_id = ? AND character_id = ?", userID, characterID).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Character already in favorites")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		favorite := models.CharacterFavorite{
			UserID:      userID,
			CharacterID: characterID,
		}
		return tx.Create(&favorite).Error
	})
}

// RemoveCharacterFavorite удаляет персонажа из избранного пользователя
func (r *UserRepository) RemoveCharacterFavorite(ctx context.Context, userID, characterID uint) error {
	return r.write(ctx, "remove_character_favorite", func(tx *gorm.DB) error {
		var favorite models.CharacterFavorite
		result := tx.Where("user_id = ? AND character_id = ?", userID, characterID).First(&favorite)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Favorite not found")
		} else if result.Error != nil {
			return result.Error
		}

		return tx.
			Where("user_id = ? AND character_id = ?", userID, characterID).
			Delete(&models.CharacterFavorite{}).Error
	})
}

// GetPlanetFavorites получает избранные планеты пользователя
func (r *UserRepository) GetPlanetFavorites(ctx context.Context, userID uint) ([]models.PlanetFavorite, error) {
	var favorites []models.PlanetFavorite
	err := r.read(ctx, "get_planet_favorites", func(tx *gorm.DB) error {
		return tx.
			Where("user_id = ?", userID).
			Preload("Planet").
			Find(&favorites).Error
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddPlanetFavorite добавляет планету в избранное пользователя
func (r *UserRepository) AddPlanetFavorite(ctx context.Context, userID, planetID uint) error {
	return r.write(ctx, "add_planet_favorite", func(tx *gorm.DB) error {
		var existing models.PlanetFavorite
		result := tx.Where("user_id = ? AND planet_id = ?", userID, planetID).First(&existing)
		if result.Error == nil {
			return apperrors.Validation("Planet already in favorites")
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		favorite := models.PlanetFavorite{
			UserID:   userID,
			PlanetID: planetID,
		}
		return tx.Create(&favorite).Error
	})
}

// RemovePlanetFavorite удаляет планету из избранного пользователя
func (r *UserRepository) RemovePlanetFavorite(ctx context.Context, userID, planetID uint) error {
	return r.write(ctx, "remove_planet_favorite", func(tx *gorm.DB) error {
		var favorite models.PlanetFavorite
		result := tx.Where("user_id = ? AND planet_id = ?", userID, planetID).First(&favorite)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Favorite not found")
		} else if result.Error != nil {
			return result.Error
		}

		return tx.
			Where("user_id = ? AND planet_id = ?", userID, planetID).
			Delete(&models.PlanetFavorite{}).Error
	})
}
