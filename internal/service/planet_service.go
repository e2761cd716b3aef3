package service

import (
	"context"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/pkg/apperrors"
	"go.uber.org/zap"
)

// PlanetServiceInterface определяет интерфейс для сервиса планет
type PlanetServiceInterface interface {
	GetPlanets(ctx context.Context) ([]models.PlanetResponse, error)
	GetPlanet(ctx context.Context, id uint) (*models.PlanetResponse, error)
	CreatePlanet(ctx context.Context, req *models.PlanetRequest) (*models.PlanetResponse, error)
	UpdatePlanet(ctx context.Context, id uint, req *models.PlanetRequest) (*models.PlanetResponse, error)
	DeletePlanet(ctx context.Context, id uint) error
}

// PlanetService представляет сервис для работы с планетами
type PlanetService struct {
	planetRepo PlanetRepositoryInterface
	logger     *zap.Logger
}

// NewPlanetService создает новый экземпляр PlanetService
func NewPlanetService(planetRepo PlanetRepositoryInterface, logger *zap.Logger) *PlanetService {
	return &PlanetService{
		planetRepo: planetRepo,
		logger:     logger,
	}
}

// GetPlanets получает все планеты; пустой каталог считается отсутствием
func (s *PlanetService) GetPlanets(ctx context.Context) ([]models.PlanetResponse, error) {
	planets, err := s.planetRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get planets", zap.Error(err))
		return nil, wrapPersistence("Error getting planets", err)
	}

	if len(planets) == 0 {
		return nil, apperrors.NotFound("No planets found")
	}

	responses := make([]models.PlanetResponse, 0, len(planets))
	for i := range planets {
		responses = append(responses, planets[i].Serialize())
	}
	return responses, nil
}

// GetPlanet получает планету по ID
func (s *PlanetService) GetPlanet(ctx context.Context, id uint) (*models.PlanetResponse, error) {
	planet, err := s.planetRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Planet not found")
		}
		s.logger.Error("Failed to get planet", zap.Error(err), zap.Uint("planet_id", id))
		return nil, wrapPersistence("Error getting planet", err)
	}

	response := planet.Serialize()
	return &response, nil
}

// CreatePlanet создает новую планету. Порядок проверок значим:
// имя, уникальность, климат, рельеф.
func (s *PlanetService) CreatePlanet(ctx context.Context, req *models.PlanetRequest) (*models.PlanetResponse, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, apperrors.MissingField("Name is required")
	}

	if err := s.checkNameFree(ctx, *req.Name); err != nil {
		return nil, err
	}

	planet := &models.Planet{
		Name:    *req.Name,
		Climate: models.ClimateUnknown,
		Terrain: models.TerrainUnknown,
	}

	if req.Climate != nil {
		climate := models.Climate(*req.Climate)
		if !climate.Valid() {
			return nil, apperrors.Validation("Invalid climate")
		}
		planet.Climate = climate
	}

	if req.Terrain != nil {
		terrain := models.Terrain(*req.Terrain)
		if !terrain.Valid() {
			return nil, apperrors.Validation("Invalid terrain")
		}
		planet.Terrain = terrain
	}

	if err := s.planetRepo.Create(ctx, planet); err != nil {
		s.logger.Error("Failed to create planet", zap.Error(err), zap.String("name", planet.Name))
		return nil, wrapPersistence("Error creating planet", err)
	}

	s.logger.Info("Planet created", zap.Uint("planet_id", planet.ID), zap.String("name", planet.Name))

	response := planet.Serialize()
	return &response, nil
}

// UpdatePlanet частично обновляет планету: отсутствующие поля сохраняют
// прежние значения, поля перепроверяются только при смене
func (s *PlanetService) UpdatePlanet(ctx context.Context, id uint, req *models.PlanetRequest) (*models.PlanetResponse, error) {
	planet, err := s.planetRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Planet not found")
		}
		s.logger.Error("Failed to get planet for update", zap.Error(err), zap.Uint("planet_id", id))
		return nil, wrapPersistence("Error updating planet", err)
	}

	if req.Name != nil && *req.Name != "" && *req.Name != planet.Name {
		if err := s.checkNameFree(ctx, *req.Name); err != nil {
			return nil, err
		}
		planet.Name = *req.Name
	}

	if req.Climate != nil && *req.Climate != "" && models.Climate(*req.Climate) != planet.Climate {
		climate := models.Climate(*req.Climate)
		if !climate.Valid() {
			return nil, apperrors.Validation("Invalid climate")
		}
		planet.Climate = climate
	}

	if req.Terrain != nil && *req.Terrain != "" && models.Terrain(*req.Terrain) != planet.Terrain {
		terrain := models.Terrain(*req.Terrain)
		if !terrain.Valid() {
			return nil, apperrors.Validation("Invalid terrain")
		}
		planet.Terrain = terrain
	}

	if err := s.planetRepo.Update(ctx, planet); err != nil {
		s.logger.Error("Failed to update planet", zap.Error(err), zap.Uint("planet_id", id))
		return nil, wrapPersistence("Error updating planet", err)
	}

	s.logger.Info("Planet updated", zap.Uint("planet_id", id))

	response := planet.Serialize()
	return &response, nil
}

// DeletePlanet удаляет планету; родной мир ссылающихся персонажей обнуляется
func (s *PlanetService) DeletePlanet(ctx context.Context, id uint) error {
	if err := s.planetRepo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFound("Planet not found")
		}
		s.logger.Error("Failed to delete planet", zap.Error(err), zap.Uint("planet_id", id))
		return wrapPersistence("Error deleting planet", err)
	}

	s.logger.Info("Planet deleted", zap.Uint("planet_id", id))
	return nil
}

// checkNameFree возвращает ошибку, если имя планеты занято
func (s *PlanetService) checkNameFree(ctx context.Context, name string) error {
	_, err := s.planetRepo.GetByName(ctx, name)
	if err == nil {
		return apperrors.Validation("Name already exists")
	}
	if !apperrors.IsNotFound(err) {
		return wrapPersistence("Error creating planet", err)
	}
	return nil
}
