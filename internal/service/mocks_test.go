package service

import (
	"context"

	"HolocronCatalogService/internal/models"
	"HolocronCatalogService/pkg/apperrors"
	"gorm.io/gorm"
)

// Мок для репозитория пользователей
type MockUserRepository struct {
	users              map[uint]*models.User
	nextID             uint
	characterFavorites map[uint][]models.CharacterFavorite
	planetFavorites    map[uint][]models.PlanetFavorite

	// Каталоги для подгрузки избранного
	characters map[uint]*models.Character
	planets    map[uint]*models.Planet
}

func NewMockUserRepository(characters map[uint]*models.Character, planets map[uint]*models.Planet) *MockUserRepository {
	return &MockUserRepository{
		users:              make(map[uint]*models.User),
		characterFavorites: make(map[uint][]models.CharacterFavorite),
		planetFavorites:    make(map[uint][]models.PlanetFavorite),
		characters:         characters,
		planets:            planets,
	}
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return apperrors.Validation("Username already exists")
		}
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return apperrors.Validation("Email already exists")
		}
	}

	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, exists := m.users[user.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if _, exists := m.users[id]; !exists {
		return apperrors.NotFound("User not found")
	}
	delete(m.users, id)
	delete(m.characterFavorites, id)
	delete(m.planetFavorites, id)
	return nil
}

func (m *MockUserRepository) GetCharacterFavorites(ctx context.Context, userID uint) ([]models.CharacterFavorite, error) {
	return m.characterFavorites[userID], nil
}

func (m *MockUserRepository) AddCharacterFavorite(ctx context.Context, userID, characterID uint) error {
	for _, fav := range m.characterFavorites[userID] {
		if fav.CharacterID == characterID {
			return apperrors.Validation("Character already in favorites")
		}
	}
	m.characterFavorites[userID] = append(m.characterFavorites[userID], models.CharacterFavorite{
		UserID:      userID,
		CharacterID: characterID,
		Character:   m.characters[characterID],
	})
	return nil
}

func (m *MockUserRepository) RemoveCharacterFavorite(ctx context.Context, userID, characterID uint) error {
	favs := m.characterFavorites[userID]
	for i, fav := range favs {
		if fav.CharacterID == characterID {
			m.characterFavorites[userID] = append(favs[:i], favs[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("Favorite not found")
}

func (m *MockUserRepository) GetPlanetFavorites(ctx context.Context, userID uint) ([]models.PlanetFavorite, error) {
	return m.planetFavorites[userID], nil
}

func (m *MockUserRepository) AddPlanetFavorite(ctx context.Context, userID, planetID uint) error {
	for _, fav := range m.planetFavorites[userID] {
		if fav.PlanetID == planetID {
			return apperrors.Validation("Planet already in favorites")
		}
	}
	m.planetFavorites[userID] = append(m.planetFavorites[userID], models.PlanetFavorite{
		UserID:   userID,
		PlanetID: planetID,
		Planet:   m.planets[planetID],
	})
	return nil
}

func (m *MockUserRepository) RemovePlanetFavorite(ctx context.Context, userID, planetID uint) error {
	favs := m.planetFavorites[userID]
	for i, fav := range favs {
		if fav.PlanetID == planetID {
			m.planetFavorites[userID] = append(favs[:i], favs[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("Favorite not found")
}

// Мок для репозитория персонажей
type MockCharacterRepository struct {
	characters map[uint]*models.Character
	nextID     uint
}

func NewMockCharacterRepository() *MockCharacterRepository {
	return &MockCharacterRepository{
		characters: make(map[uint]*models.Character),
	}
}

func (m *MockCharacterRepository) GetAll(ctx context.Context) ([]models.Character, error) {
	characters := make([]models.Character, 0, len(m.characters))
	for _, character := range m.characters {
		characters = append(characters, *character)
	}
	return characters, nil
}

func (m *MockCharacterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	character, exists := m.characters[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return character, nil
}

func (m *MockCharacterRepository) GetByName(ctx context.Context, name string) (*models.Character, error) {
	for _, character := range m.characters {
		if character.Name == name {
			return character, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	for _, existing := range m.characters {
		if existing.Name == character.Name {
			return apperrors.Validation("Name already exists")
		}
	}

	m.nextID++
	character.ID = m.nextID
	if character.Weight != nil {
		character.Weight.CharacterID = character.ID
	}
	m.characters[character.ID] = character
	return nil
}

func (m *MockCharacterRepository) Update(ctx context.Context, character *models.Character) error {
	if _, exists := m.characters[character.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.characters[character.ID] = character
	return nil
}

func (m *MockCharacterRepository) Delete(ctx context.Context, id uint) error {
	if _, exists := m.characters[id]; !exists {
		return apperrors.NotFound("Character not found")
	}
	delete(m.characters, id)
	return nil
}

// Мок для репозитория планет
type MockPlanetRepository struct {
	planets map[uint]*models.Planet
	nextID  uint
}

func NewMockPlanetRepository() *MockPlanetRepository {
	return &MockPlanetRepository{
		planets: make(map[uint]*models.Planet),
	}
}

func (m *MockPlanetRepository) GetAll(ctx context.Context) ([]models.Planet, error) {
	planets := make([]models.Planet, 0, len(m.planets))
	for _, planet := range m.planets {
		planets = append(planets, *planet)
	}
	return planets, nil
}

func (m *MockPlanetRepository) GetByID(ctx context.Context, id uint) (*models.Planet, error) {
	planet, exists := m.planets[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return planet, nil
}

func (m *MockPlanetRepository) GetByName(ctx context.Context, name string) (*models.Planet, error) {
	for _, planet := range m.planets {
		if planet.Name == name {
			return planet, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPlanetRepository) Create(ctx context.Context, planet *models.Planet) error {
	for _, existing := range m.planets {
		if existing.Name == planet.Name {
			return apperrors.Validation("Name already exists")
		}
	}

	m.nextID++
	planet.ID = m.nextID
	m.planets[planet.ID] = planet
	return nil
}

func (m *MockPlanetRepository) Update(ctx context.Context, planet *models.Planet) error {
	if _, exists := m.planets[planet.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	m.planets[planet.ID] = planet
	return nil
}

func (m *MockPlanetRepository) Delete(ctx context.Context, id uint) error {
	if _, exists := m.planets[id]; !exists {
		return apperrors.NotFound("Planet not found")
	}
	delete(m.planets, id)
	return nil
}
