package models

import (
	"math"
	"strconv"
	"time"
)

// Порядок полей в структурах ответов значим: существующие клиенты
// полагаются на порядок ключей в JSON.

// FavoriteItem представляет элемент списка избранного в ответе
type FavoriteItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserResponse представляет ответ с данными пользователя
type UserResponse struct {
	ID                  uint           `json:"id"`
	Email               string         `json:"email"`
	Username            string         `json:"username"`
	IsActive            bool           `json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	CharactersFavorites []FavoriteItem `json:"characters_favorites"`
	PlanetsFavorites    []FavoriteItem `json:"planets_favorites"`
}

// CharacterResponse представляет ответ с данными персонажа
type CharacterResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Height         *int     `json:"height"`
	Weight         *string  `json:"weight"`
	HairColor      string   `json:"hair_color"`
	BirthDay       *string  `json:"birth_day"`
	HomeWorld      *string  `json:"home_world"`
	UsersFavorites []string `json:"users_favorites"`
}

// PlanetResponse представляет ответ с данными планеты
type PlanetResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Climate        string   `json:"climate"`
	Terrain        string   `json:"terrain"`
	Characters     []string `json:"characters"`
	UsersFavorites []string `json:"users_favorites"`
}

// WeightResponse представляет ответ с данными веса
type WeightResponse struct {
	CharacterID uint   `json:"character_id"`
	Weight      string `json:"weight"`
}

// Serialize проецирует пользователя в ответ; связи избранного должны быть
// предзагружены вместе с целевыми сущностями
func (u *User) Serialize() UserResponse {
	characters := make([]FavoriteItem, 0, len(u.CharactersFavorites))
	for _, fav := range u.CharactersFavorites {
		if fav.Character != nil {
			characters = append(characters, FavoriteItem{ID: fav.Character.ID, Name: fav.Character.Name})
		}
	}

	planets := make([]FavoriteItem, 0, len(u.PlanetsFavorites))
	for _, fav := range u.PlanetsFavorites {
		if fav.Planet != nil {
			planets = append(planets, FavoriteItem{ID: fav.Planet.ID, Name: fav.Planet.Name})
		}
	}

	return UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Username:            u.Username,
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt,
		CharactersFavorites: characters,
		PlanetsFavorites:    planets,
	}
}

// Serialize проецирует персонажа в ответ; раскрывается ровно один уровень
// связей — имя родного мира и имена отметивших пользователей
func (c *Character) Serialize() CharacterResponse {
	var weight *string
	if c.Weight != nil {
		s := c.Weight.Format()
		weight = &s
	}

	var birthDay *string
	if c.BirthDay != nil {
		s := c.BirthDay.Format(BirthDayLayout)
		birthDay = &s
	}

	var homeWorld *string
	if c.HomeWorld != nil {
		homeWorld = &c.HomeWorld.Name
	}

	usernames := make([]string, 0, len(c.UsersFavorites))
	for _, fav := range c.UsersFavorites {
		if fav.User != nil {
			usernames = append(usernames, fav.User.Username)
		}
	}

	return CharacterResponse{
		ID:             c.ID,
		Name:           c.Name,
		Height:         c.Height,
		Weight:         weight,
		HairColor:      string(c.HairColor),
		BirthDay:       birthDay,
		HomeWorld:      homeWorld,
		UsersFavorites: usernames,
	}
}

// Serialize проецирует планету в ответ
func (p *Planet) Serialize() PlanetResponse {
	characters := make([]string, 0, len(p.Characters))
	for _, character := range p.Characters {
		characters = append(characters, character.Name)
	}

	usernames := make([]string, 0, len(p.UsersFavorites))
	for _, fav := range p.UsersFavorites {
		if fav.User != nil {
			usernames = append(usernames, fav.User.Username)
		}
	}

	return PlanetResponse{
		ID:             p.ID,
		Name:           p.Name,
		Climate:        string(p.Climate),
		Terrain:        string(p.Terrain),
		Characters:     characters,
		UsersFavorites: usernames,
	}
}

// Serialize проецирует вес в ответ
func (w *Weight) Serialize() WeightResponse {
	return WeightResponse{
		CharacterID: w.CharacterID,
		Weight:      w.Format(),
	}
}

// Format возвращает строку вида "<значение> <единица>", например "84.0 kg".
// Целое значение всегда печатается с одним десятичным знаком.
func (w *Weight) Format() string {
	return formatWeightValue(w.Value) + " " + string(w.Unit)
}

func formatWeightValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
