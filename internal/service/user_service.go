package service

import (
	"context"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/pkg/apperrors"
	"go.uber.org/zap"
)

// минимальная длина пароля пользователя
const minPasswordLength = 8

// UserServiceInterface определяет интерфейс для сервиса пользователей
type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]models.UserResponse, error)
	GetUser(ctx context.Context, id uint) (*models.UserResponse, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	UpdateUser(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
	AddCharacterFavorite(ctx context.Context, userID uint, req *models.CharacterFavoriteRequest) ([]models.FavoriteItem, error)
	RemoveCharacterFavorite(ctx context.Context, userID, characterID uint) ([]models.FavoriteItem, error)
	AddPlanetFavorite(ctx context.Context, userID uint, req *models.PlanetFavoriteRequest) ([]models.FavoriteItem, error)
	RemovePlanetFavorite(ctx context.Context, userID, planetID uint) ([]models.FavoriteItem, error)
}

// UserService представляет сервис для работы с пользователями и их избранным
type UserService struct {
	userRepo      UserRepositoryInterface
	characterRepo CharacterRepositoryInterface
	planetRepo    PlanetRepositoryInterface
	hasher        PasswordHasher
	logger        *zap.Logger
}

// NewUserService создает новый экземпляр UserService
func NewUserService(
	userRepo UserRepositoryInterface,
	characterRepo CharacterRepositoryInterface,
	planetRepo PlanetRepositoryInterface,
	hasher PasswordHasher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		characterRepo: characterRepo,
		planetRepo:    planetRepo,
		hasher:        hasher,
		logger:        logger,
	}
}

// GetUsers получает всех пользователей; пустой каталог считается отсутствием
func (s *UserService) GetUsers(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get users", zap.Error(err))
		return nil, wrapPersistence("Error getting users", err)
	}

	if len(users) == 0 {
		return nil, apperrors.NotFound("No users found")
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].Serialize())
	}
	return responses, nil
}

// GetUser получает пользователя по ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		s.logger.Error("Failed to get user", zap.Error(err), zap.Uint("user_id", id))
		return nil, wrapPersistence("Error getting user", err)
	}

	response := user.Serialize()
	return &response, nil
}

// CreateUser создает нового пользователя. Порядок проверок значим:
// обязательные поля, уникальность, длина пароля.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	if req.Username == nil || *req.Username == "" {
		return nil, apperrors.MissingField("Username is required")
	}
	if req.Email == nil || *req.Email == "" {
		return nil, apperrors.MissingField("Email is required")
	}
	if req.Password == nil || *req.Password == "" {
		return nil, apperrors.MissingField("Password is required")
	}

	if err := s.checkUsernameFree(ctx, *req.Username); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, *req.Email); err != nil {
		return nil, err
	}

	if len(*req.Password) < minPasswordLength {
		return nil, apperrors.Validation("Password must be at least 8 characters long")
	}

	hashed, err := s.hasher.Hash(*req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, wrapPersistence("Error creating user", err)
	}

	user := &models.User{
		Username: *req.Username,
		Email:    *req.Email,
		Password: hashed,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err), zap.String("username", user.Username))
		return nil, wrapPersistence("Error creating user", err)
	}

	s.logger.Info("User created", zap.Uint("user_id", user.ID), zap.String("username", user.Username))

	response := user.Serialize()
	return &response, nil
}

// UpdateUser частично обновляет пользователя: отсутствующие поля сохраняют
// прежние значения, смена пароля требует подтверждения текущим паролем
func (s *UserService) UpdateUser(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		s.logger.Error("Failed to get user for update", zap.Error(err), zap.Uint("user_id", id))
		return nil, wrapPersistence("Error updating user", err)
	}

	// Уникальность проверяется только при фактической смене значения
	if req.Username != nil && *req.Username != "" && *req.Username != user.Username {
		if err := s.checkUsernameFree(ctx, *req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		if err := s.checkEmailFree(ctx, *req.Email); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}

	if req.Password != nil && *req.Password != "" {
		if req.CurrentPassword == nil || *req.CurrentPassword == "" {
			return nil, apperrors.MissingField("Current password is required to update the password")
		}
		if !s.hasher.Compare(user.Password, *req.CurrentPassword) {
			return nil, apperrors.Authorization("Current password is incorrect")
		}
		if len(*req.Password) < minPasswordLength {
			return nil, apperrors.Validation("Password must be at least 8 characters long")
		}

		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err), zap.Uint("user_id", id))
			return nil, wrapPersistence("Error updating user", err)
		}
		user.Password = hashed
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err), zap.Uint("user_id", id))
		return nil, wrapPersistence("Error updating user", err)
	}

	s.logger.Info("User updated", zap.Uint("user_id", id))

	response := user.Serialize()
	return &response, nil
}

// DeleteUser удаляет пользователя вместе с его избранным
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFound("User not found")
		}
		s.logger.Error("Failed to delete user", zap.Error(err), zap.Uint("user_id", id))
		return wrapPersistence("Error deleting user", err)
	}

	s.logger.Info("User deleted", zap.Uint("user_id", id))
	return nil
}

// AddCharacterFavorite добавляет персонажа в избранное пользователя
// и возвращает обновленный список избранных персонажей
func (s *UserService) AddCharacterFavorite(ctx context.Context, userID uint, req *models.CharacterFavoriteRequest) ([]models.FavoriteItem, error) {
	if !req.CharacterID.Present() {
		return nil, apperrors.MissingField("Character ID is required")
	}

	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	// Значение, не являющееся положительным целым, не находит персонажа
	if !req.CharacterID.Valid() || req.CharacterID.Value() <= 0 {
		return nil, apperrors.NotFound("Character not found")
	}
	characterID := uint(req.CharacterID.Value())

	if _, err := s.characterRepo.GetByID(ctx, characterID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Character not found")
		}
		return nil, wrapPersistence("Error adding character to favorites", err)
	}

	if err := s.userRepo.AddCharacterFavorite(ctx, userID, characterID); err != nil {
		s.logger.Error("Failed to add character favorite",
			zap.Error(err),
			zap.Uint("user_id", userID),
			zap.Uint("character_id", characterID))
		return nil, wrapPersistence("Error adding character to favorites", err)
	}

	s.logger.Info("Character favorite added",
		zap.Uint("user_id", userID),
		zap.Uint("character_id", characterID))

	return s.characterFavoriteItems(ctx, userID, "Error adding character to favorites")
}

// RemoveCharacterFavorite удаляет персонажа из избранного пользователя
// и возвращает обновленный список избранных персонажей
func (s *UserService) RemoveCharacterFavorite(ctx context.Context, userID, characterID uint) ([]models.FavoriteItem, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.characterRepo.GetByID(ctx, characterID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Character not found")
		}
		return nil, wrapPersistence("Error removing character from favorites", err)
	}

	if err := s.userRepo.RemoveCharacterFavorite(ctx, userID, characterID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("Failed to remove character favorite",
			zap.Error(err),
			zap.Uint("user_id", userID),
			zap.Uint("character_id", characterID))
		return nil, wrapPersistence("Error removing character from favorites", err)
	}

	s.logger.Info("Character favorite removed",
		zap.Uint("user_id", userID),
		zap.Uint("character_id", characterID))

	return s.characterFavoriteItems(ctx, userID, "Error removing character from favorites")
}

// AddPlanetFavorite добавляет планету в избранное пользователя
// и возвращает обновленный список избранных планет
func (s *UserService) AddPlanetFavorite(ctx context.Context, userID uint, req *models.PlanetFavoriteRequest) ([]models.FavoriteItem, error) {
	if !req.PlanetID.Present() {
		return nil, apperrors.MissingField("Planet ID is required")
	}

	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	// Значение, не являющееся положительным целым, не находит планету
	if !req.PlanetID.Valid() || req.PlanetID.Value() <= 0 {
		return nil, apperrors.NotFound("Planet not found")
	}
	planetID := uint(req.PlanetID.Value())

	if _, err := s.planetRepo.GetByID(ctx, planetID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Planet not found")
		}
		return nil, wrapPersistence("Error adding planet to favorites", err)
	}

	if err := s.userRepo.AddPlanetFavorite(ctx, userID, planetID); err != nil {
		s.logger.Error("Failed to add planet favorite",
			zap.Error(err),
			zap.Uint("user_id", userID),
			zap.Uint("planet_id", planetID))
		return nil, wrapPersistence("Error adding planet to favorites", err)
	}

	s.logger.Info("Planet favorite added",
		zap.Uint("user_id", userID),
		zap.Uint("planet_id", planetID))

	return s.planetFavoriteItems(ctx, userID, "Error adding planet to favorites")
}

// RemovePlanetFavorite удаляет планету из избранного пользователя
// и возвращает обновленный список избранных планет
func (s *UserService) RemovePlanetFavorite(ctx context.Context, userID, planetID uint) ([]models.FavoriteItem, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.planetRepo.GetByID(ctx, planetID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("Planet not found")
		}
		return nil, wrapPersistence("Error removing planet from favorites", err)
	}

	if err := s.userRepo.RemovePlanetFavorite(ctx, userID, planetID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("Failed to remove planet favorite",
			zap.Error(err),
			zap.Uint("user_id", userID),
			zap.Uint("planet_id", planetID))
		return nil, wrapPersistence("Error removing planet from favorites", err)
	}

	s.logger.Info("Planet favorite removed",
		zap.Uint("user_id", userID),
		zap.Uint("planet_id", planetID))

	return s.planetFavoriteItems(ctx, userID, "Error removing planet from favorites")
}

// checkUsernameFree возвращает ошибку, если имя пользователя занято
func (s *UserService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return apperrors.Validation("Username already exists")
	}
	if !apperrors.IsNotFound(err) {
		return wrapPersistence("Error creating user", err)
	}
	return nil
}

// checkEmailFree возвращает ошибку, если почта занята
func (s *UserService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return apperrors.Validation("Email already exists")
	}
	if !apperrors.IsNotFound(err) {
		return wrapPersistence("Error creating user", err)
	}
	return nil
}

// ensureUserExists проверяет существование пользователя
func (s *UserService) ensureUserExists(ctx context.Context, userID uint) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFound("User not found")
		}
		return wrapPersistence("Error getting user", err)
	}
	return nil
}

// characterFavoriteItems возвращает текущий список избранных персонажей
func (s *UserService) characterFavoriteItems(ctx context.Context, userID uint, failMessage string) ([]models.FavoriteItem, error) {
	favorites, err := s.userRepo.GetCharacterFavorites(ctx, userID)
	if err != nil {
		return nil, wrapPersistence(failMessage, err)
	}

	items := make([]models.FavoriteItem, 0, len(favorites))
	for _, fav := range favorites {
		if fav.Character != nil {
			items = append(items, models.FavoriteItem{ID: fav.Character.ID, Name: fav.Character.Name})
		}
	}
	return items, nil
}

// planetFavoriteItems возвращает текущий список избранных планет
func (s *UserService) planetFavoriteItems(ctx context.Context, userID uint, failMessage string) ([]models.FavoriteItem, error) {
	favorites, err := s.userRepo.GetPlanetFavorites(ctx, userID)
	if err != nil {
		return nil, wrapPersistence(failMessage, err)
	}

	items := make([]models.FavoriteItem, 0, len(favorites))
	for _, fav := range favorites {
		if fav.Planet != nil {
			items = append(items, models.FavoriteItem{ID: fav.Planet.ID, Name: fav.Planet.Name})
		}
	}
	return items, nil
}
