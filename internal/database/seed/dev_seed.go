package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DevEnvironmentSeeder обрабатывает заполнение тестовыми данными среды разработки
type DevEnvironmentSeeder struct {
	db     *gorm.DB
	hasher service.PasswordHasher
	logger *zap.Logger
}

// NewDevEnvironmentSeeder создает новый объект для заполнения тестовыми данными
func NewDevEnvironmentSeeder(db *gorm.DB, hasher service.PasswordHasher, logger *zap.Logger) *DevEnvironmentSeeder {
	return &DevEnvironmentSeeder{
		db:     db,
		hasher: hasher,
		logger: logger,
	}
}

// SeedCatalog создает стартовый набор каталога, если мы находимся в режиме разработки
func (s *DevEnvironmentSeeder) SeedCatalog() error {
	// Проверяем, находимся ли мы в режиме разработки
	if os.Getenv("APP_ENV") != "development" {
		s.logger.Debug("Не в режиме разработки, пропускаем заполнение каталога")
		return nil
	}

	s.logger.Info("Заполнение каталога тестовыми данными для среды разработки")

	// Проверяем, существует ли уже тестовый пользователь
	var existing models.User
	if err := s.db.Where("username = ?", "padawan").First(&existing).Error; err == nil {
		s.logger.Info("Тестовые данные уже существуют", zap.Uint("user_id", existing.ID))
		return nil
	}

	hash, err := s.hasher.Hash("open-sesame")
	if err != nil {
		return fmt.Errorf("не удалось вычислить хеш пароля тестового пользователя: %w", err)
	}

	testUser := &models.User{
		Username: "padawan",
		Email:    "padawan@example.com",
		Password: hash,
		IsActive: true,
	}

	// Сохраняем в базу данных внутри транзакции
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Создаем родной мир
		tatooine := &models.Planet{
			Name:    "Tatooine",
			Climate: models.ClimateArid,
			Terrain: models.TerrainDesert,
		}
		if err := tx.Create(tatooine).Error; err != nil {
			return fmt.Errorf("не удалось создать тестовую планету: %w", err)
		}

		// Создаем персонажа с весом
		height := 172
		birthDay := time.Date(1977, time.May, 25, 0, 0, 0, 0, time.UTC)
		luke := &models.Character{
			Name:        "Luke Skywalker",
			Height:      &height,
			HairColor:   models.HairColorBlonde,
			BirthDay:    &birthDay,
			HomeWorldID: &tatooine.ID,
			Weight:      &models.Weight{Value: 73, Unit: models.WeightUnitKg},
		}
		if err := tx.Create(luke).Error; err != nil {
			return fmt.Errorf("не удалось создать тестового персонажа: %w", err)
		}

		// Создаем пользователя
		if err := tx.Create(testUser).Error; err != nil {
			return fmt.Errorf("не удалось создать тестового пользователя: %w", err)
		}

		// Отмечаем персонажа и планету в избранном пользователя
		characterFavorite := models.CharacterFavorite{UserID: testUser.ID, CharacterID: luke.ID}
		if err := tx.Create(&characterFavorite).Error; err != nil {
			return fmt.Errorf("не удалось отметить тестового персонажа в избранном: %w", err)
		}

		planetFavorite := models.PlanetFavorite{UserID: testUser.ID, PlanetID: tatooine.ID}
		if err := tx.Create(&planetFavorite).Error; err != nil {
			return fmt.Errorf("не удалось отметить тестовую планету в избранном: %w", err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Не удалось заполнить каталог тестовыми данными", zap.Error(err))
		return err
	}

	s.logger.Info("Успешно созданы тестовые данные каталога", zap.Uint("user_id", testUser.ID))
	return nil
}

// SeedAllDevData заполняет все данные для разработки
func (s *DevEnvironmentSeeder) SeedAllDevData(ctx context.Context) error {
	// В настоящее время у нас есть только заполнение каталога
	return s.SeedCatalog()
}
