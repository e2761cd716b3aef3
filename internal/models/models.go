package models

import (
	"time"
)

// User представляет основную модель пользователя каталога
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:50;uniqueIndex"`
	Username  string    `gorm:"size:30;uniqueIndex"`
	Password  string    `gorm:"size:300"`
	IsActive  bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	// Связи: записи избранного принадлежат пользователю и удаляются вместе с ним
	CharactersFavorites []CharacterFavorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PlanetsFavorites    []PlanetFavorite    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Character представляет персонажа каталога
type Character struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"size:50;uniqueIndex"`
	Height      *int       `gorm:""`
	HairColor   HairColor  `gorm:"type:varchar(20);default:unknown"`
	BirthDay    *time.Time `gorm:"type:date"`
	HomeWorldID *uint      `gorm:"index"`

	// Связи
	Weight         *Weight             `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE"`
	HomeWorld      *Planet             `gorm:"foreignKey:HomeWorldID"`
	UsersFavorites []CharacterFavorite `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE"`
}

// Weight представляет вес персонажа; строка существует только вместе с персонажем
// и разделяет его первичный ключ
type Weight struct {
	CharacterID uint       `gorm:"primaryKey;autoIncrement:false"`
	Value       float64    `gorm:"column:weight"`
	Unit        WeightUnit `gorm:"type:varchar(5);default:kg"`
}

// Planet представляет планету каталога
type Planet struct {
	ID      uint    `gorm:"primaryKey"`
	Name    string  `gorm:"size:50;uniqueIndex"`
	Climate Climate `gorm:"type:varchar(20);default:unknown"`
	Terrain Terrain `gorm:"type:varchar(20);default:unknown"`

	// Связи: персонажи, для которых планета является родным миром, не удаляются
	// вместе с планетой — ссылка обнуляется на уровне репозитория
	Characters     []Character      `gorm:"foreignKey:HomeWorldID"`
	UsersFavorites []PlanetFavorite `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE"`
}

// CharacterFavorite представляет связь "пользователь отметил персонажа".
// Составной первичный ключ гарантирует не более одной строки на пару.
type CharacterFavorite struct {
	UserID      uint `gorm:"primaryKey;autoIncrement:false"`
	CharacterID uint `gorm:"primaryKey;autoIncrement:false"`

	User      *User      `gorm:"foreignKey:UserID"`
	Character *Character `gorm:"foreignKey:CharacterID"`
}

// PlanetFavorite представляет связь "пользователь отметил планету"
type PlanetFavorite struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false"`
	PlanetID uint `gorm:"primaryKey;autoIncrement:false"`

	User   *User   `gorm:"foreignKey:UserID"`
	Planet *Planet `gorm:"foreignKey:PlanetID"`
}

// TableName устанавливает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// TableName устанавливает имя таблицы для модели Character
func (Character) TableName() string {
	return "characters"
}

// TableName устанавливает имя таблицы для модели Weight
func (Weight) TableName() string {
	return "weights"
}

// TableName устанавливает имя таблицы для модели Planet
func (Planet) TableName() string {
	return "planets"
}

// TableName устанавливает имя таблицы для модели CharacterFavorite
func (CharacterFavorite) TableName() string {
	return "characters_favorites"
}

// TableName устанавливает имя таблицы для модели PlanetFavorite
func (PlanetFavorite) TableName() string {
	return "planets_favorites"
}
