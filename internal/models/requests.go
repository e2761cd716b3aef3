package models

// BirthDayLayout задает текстовый формат даты рождения в запросах и ответах
const BirthDayLayout = "02-01-2006"

// CreateUserRequest представляет запрос на создание пользователя
type CreateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUserRequest представляет запрос на частичное обновление пользователя.
// Отсутствующее поле (nil) сохраняет прежнее значение.
type UpdateUserRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	CurrentPassword *string `json:"current_password"`
	Password        *string `json:"password"`
	IsActive        *bool   `json:"is_active"`
}

// CharacterRequest представляет тело запроса на создание или частичное
// обновление персонажа; оба пути используют один набор необязательных полей
type CharacterRequest struct {
	Name        *string       `json:"name"`
	Height      OptionalInt   `json:"height"`
	HairColor   *string       `json:"hair_color"`
	BirthDay    *string       `json:"birth_day"`
	HomeWorldID OptionalInt   `json:"home_world_id"`
	Weight      OptionalFloat `json:"weight"`
	WeightUnit  *string       `json:"weight_unit"`
}

// PlanetRequest представляет тело запроса на создание или частичное
// обновление планеты
type PlanetRequest struct {
	Name    *string `json:"name"`
	Climate *string `json:"climate"`
	Terrain *string `json:"terrain"`
}

// CharacterFavoriteRequest представляет запрос на добавление персонажа в избранное
type CharacterFavoriteRequest struct {
	CharacterID OptionalInt `json:"character_id"`
}

// PlanetFavoriteRequest представляет запрос на добавление планеты в избранное
type PlanetFavoriteRequest struct {
	PlanetID OptionalInt `json:"planet_id"`
}
