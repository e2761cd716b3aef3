package service

import (
	"context"
	"time"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/pkg/apperrors"
	"go.uber.org/zap"
)

// CharacterServiceInterface определяет интерфейс для сервиса персонажей
type CharacterServiceInterface interface {
	GetCharacters(ctx context.Context) ([]models.CharacterResponse, error)
	GetCharacter(ctx context.Context, id uint) (*models.CharacterResponse, error)
	CreateCharacter(ctx context.Context, req *models.CharacterRequest) (*models.CharacterResponse, error)
	UpdateCharacter(ctx context.Context, id uint, req *models.CharacterRequest) (*models.CharacterResponse, error)
	DeleteCharacter(ctx context.Context, id uint) error
}

// CharacterService представляет сервис для работы с персонажами
type CharacterService struct {
	characterRepo CharacterRepositoryInterface
	planetRepo    PlanetRepositoryInterface
	logger        *zap.Logger
}

// NewCharacterService создает новый экземпляр CharacterService
func NewCharacterService(
	characterRepo CharacterRepositoryInterface,
	planetRepo PlanetRepositoryInterface,
	logger *zap.Logger,
) *CharacterService {
	return &CharacterService{
		characterRepo: characterRepo,
		planetRepo:    planetRepo,
		logger:        logger,
	}
}

// GetCharacters получает всех персонажей; пустой каталог считается отсутствием
func (s *CharacterService) GetCharacters(ctx context.Context) ([]models.CharacterResponse, error) {
	characters, err := s.characterRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get characters", zap.Error(err))
		return nil, wrapPersistence("Error getting characters", err)
	}

	if len(characters) == 0 {
		return nil, apperrors.NotFound("No characters found")
	}

	responses := make([]models.CharacterResponse, 0, len(characters))
	for i := range characters {
		responses = append(responses, characters[i].Serialize())
	}
	return responses, nil
}

// GetCharacter получает персонажа по ID
func (s *CharacterService) GetCharacter(ctx context.Context, id uint) (*models.CharacterResponse, error) {
	character, err := s.characterRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Character not found")
		}
		s.logger.Error("Failed to get character", zap.Error(err), zap.Uint("character_id", id))
		return nil, wrapPersistence("Error getting character", err)
	}

	response := character.Serialize()
	return &response, nil
}

// CreateCharacter создает нового персонажа. Порядок проверок значим:
// имя, уникальность, цвет волос, рост, дата рождения, родной мир, вес.
func (s *CharacterService) CreateCharacter(ctx context.Context, req *models.CharacterRequest) (*models.CharacterResponse, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, apperrors.MissingField("Name is required")
	}

	if err := s.checkNameFree(ctx, *req.Name); err != nil {
		return nil, err
	}

	character := &models.Character{
		Name:      *req.Name,
		HairColor: models.HairColorUnknown,
	}

	if req.HairColor != nil {
		hairColor := models.HairColor(*req.HairColor)
		if !hairColor.Valid() {
			return nil, apperrors.Validation("Invalid hair color")
		}
		character.HairColor = hairColor
	}

	if req.Height.Present() {
		if !req.Height.Valid() {
			return nil, apperrors.Validation("Height must be an integer")
		}
		height := int(req.Height.Value())
		character.Height = &height
	}

	if req.BirthDay != nil && *req.BirthDay != "" {
		birthDay, err := time.Parse(models.BirthDayLayout, *req.BirthDay)
		if err != nil {
			return nil, apperrors.Validation("Birth day must be in DD-MM-YYYY format")
		}
		character.BirthDay = &birthDay
	}

	if req.HomeWorldID.Present() {
		if !req.HomeWorldID.Valid() {
			return nil, apperrors.Validation("Home world id must be an integer")
		}
		homeWorld, err := s.lookupHomeWorld(ctx, uint(req.HomeWorldID.Value()))
		if err != nil {
			return nil, err
		}
		character.HomeWorldID = &homeWorld.ID
		character.HomeWorld = homeWorld
	}

	if req.Weight.Present() {
		weight, err := buildWeight(req)
		if err != nil {
			return nil, err
		}
		character.Weight = weight
	}

	if err := s.characterRepo.Create(ctx, character); err != nil {
		s.logger.Error("Failed to create character", zap.Error(err), zap.String("name", character.Name))
		return nil, wrapPersistence("Error creating character", err)
	}

	s.logger.Info("Character created", zap.Uint("character_id", character.ID), zap.String("name", character.Name))

	response := character.Serialize()
	return &response, nil
}

// UpdateCharacter частично обновляет персонажа: отсутствующие поля сохраняют
// прежние значения, имя и цвет волос перепроверяются только при смене
func (s *CharacterService) UpdateCharacter(ctx context.Context, id uint, req *models.CharacterRequest) (*models.CharacterResponse, error) {
	character, err := s.characterRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Character not found")
		}
		s.logger.Error("Failed to get character for update", zap.Error(err), zap.Uint("character_id", id))
		return nil, wrapPersistence("Error updating character", err)
	}

	if req.Name != nil && *req.Name != "" && *req.Name != character.Name {
		if err := s.checkNameFree(ctx, *req.Name); err != nil {
			return nil, err
		}
		character.Name = *req.Name
	}

	if req.HairColor != nil && *req.HairColor != "" && models.HairColor(*req.HairColor) != character.HairColor {
		hairColor := models.HairColor(*req.HairColor)
		if !hairColor.Valid() {
			return nil, apperrors.Validation("Invalid hair color")
		}
		character.HairColor = hairColor
	}

	if req.Height.Present() {
		if !req.Height.Valid() {
			return nil, apperrors.Validation("Height must be an integer")
		}
		height := int(req.Height.Value())
		character.Height = &height
	}

	if req.BirthDay != nil && *req.BirthDay != "" {
		birthDay, err := time.Parse(models.BirthDayLayout, *req.BirthDay)
		if err != nil {
			return nil, apperrors.Validation("Birth day must be in DD-MM-YYYY format")
		}
		character.BirthDay = &birthDay
	}

	if req.HomeWorldID.Present() {
		if !req.HomeWorldID.Valid() {
			return nil, apperrors.Validation("Home world id must be an integer")
		}
		homeWorld, err := s.lookupHomeWorld(ctx, uint(req.HomeWorldID.Value()))
		if err != nil {
			return nil, err
		}
		character.HomeWorldID = &homeWorld.ID
		character.HomeWorld = homeWorld
	}

	if req.Weight.Present() {
		weight, err := buildWeight(req)
		if err != nil {
			return nil, err
		}
		weight.CharacterID = character.ID

		if character.Weight == nil {
			character.Weight = weight
		} else {
			// Существующий вес перезаписывается целиком: без явной
			// единицы измерения значение возвращается к килограммам
			character.Weight.Value = weight.Value
			character.Weight.Unit = weight.Unit
		}
	}

	if err := s.characterRepo.Update(ctx, character); err != nil {
		s.logger.Error("Failed to update character", zap.Error(err), zap.Uint("character_id", id))
		return nil, wrapPersistence("Error updating character", err)
	}

	s.logger.Info("Character updated", zap.Uint("character_id", id))

	response := character.Serialize()
	return &response, nil
}

// DeleteCharacter удаляет персонажа вместе с весом и записями избранного
func (s *CharacterService) DeleteCharacter(ctx context.Context, id uint) error {
	if err := s.characterRepo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFound("Character not found")
		}
		s.logger.Error("Failed to delete character", zap.Error(err), zap.Uint("character_id", id))
		return wrapPersistence("Error deleting character", err)
	}

	s.logger.Info("Character deleted", zap.Uint("character_id", id))
	return nil
}

// checkNameFree возвращает ошибку, если имя персонажа занято
func (s *CharacterService) checkNameFree(ctx context.Context, name string) error {
	_, err := s.characterRepo.GetByName(ctx, name)
	if err == nil {
		return apperrors.Validation("Name already exists")
	}
	if !apperrors.IsNotFound(err) {
		return wrapPersistence("Error creating character", err)
	}
	return nil
}

// lookupHomeWorld получает планету родного мира персонажа
func (s *CharacterService) lookupHomeWorld(ctx context.Context, planetID uint) (*models.Planet, error) {
	planet, err := s.planetRepo.GetByID(ctx, planetID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Home world not found")
		}
		return nil, wrapPersistence("Error creating character", err)
	}
	return planet, nil
}

// buildWeight собирает вес из запроса; единица по умолчанию — килограммы
func buildWeight(req *models.CharacterRequest) (*models.Weight, error) {
	if !req.Weight.Valid() {
		return nil, apperrors.Validation("Weight must be a float")
	}

	unit := models.WeightUnitKg
	if req.WeightUnit != nil {
		unit = models.WeightUnit(*req.WeightUnit)
	}
	if !unit.Valid() {
		return nil, apperrors.Validation("Invalid weight unit")
	}

	return &models.Weight{
		Value: req.Weight.Value(),
		Unit:  unit,
	}, nil
}
