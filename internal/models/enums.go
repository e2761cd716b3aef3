package models

// HairColor представляет замкнутое перечисление цвета волос персонажа
type HairColor string

const (
	HairColorBlack   HairColor = "black"
	HairColorBrown   HairColor = "brown"
	HairColorBlonde  HairColor = "blonde"
	HairColorRed     HairColor = "red"
	HairColorGrey    HairColor = "grey"
	HairColorWhite   HairColor = "white"
	HairColorUnknown HairColor = "unknown"
)

// hairColors содержит все допустимые значения перечисления
var hairColors = []HairColor{
	HairColorBlack,
	HairColorBrown,
	HairColorBlonde,
	HairColorRed,
	HairColorGrey,
	HairColorWhite,
	HairColorUnknown,
}

// Valid проверяет принадлежность значения перечислению
func (c HairColor) Valid() bool {
	for _, known := range hairColors {
		if c == known {
			return true
		}
	}
	return false
}

// Climate представляет замкнутое перечисление климата планеты
type Climate string

const (
	ClimateTropical  Climate = "tropical"
	ClimateTemperate Climate = "temperate"
	ClimateArid      Climate = "arid"
	ClimatePolar     Climate = "polar"
	ClimateUnknown   Climate = "unknown"
)

var climates = []Climate{
	ClimateTropical,
	ClimateTemperate,
	ClimateArid,
	ClimatePolar,
	ClimateUnknown,
}

// Valid проверяет принадлежность значения перечислению
func (c Climate) Valid() bool {
	for _, known := range climates {
		if c == known {
			return true
		}
	}
	return false
}

// Terrain представляет замкнутое перечисление рельефа планеты
type Terrain string

const (
	TerrainDesert    Terrain = "desert"
	TerrainGrassland Terrain = "grassland"
	TerrainMountain  Terrain = "mountain"
	TerrainForest    Terrain = "forest"
	TerrainSwamp     Terrain = "swamp"
	TerrainOcean     Terrain = "ocean"
	TerrainUnknown   Terrain = "unknown"
)

var terrains = []Terrain{
	TerrainDesert,
	TerrainGrassland,
	TerrainMountain,
	TerrainForest,
	TerrainSwamp,
	TerrainOcean,
	TerrainUnknown,
}

// Valid проверяет принадлежность значения перечислению
func (t Terrain) Valid() bool {
	for _, known := range terrains {
		if t == known {
			return true
		}
	}
	return false
}

// WeightUnit представляет замкнутое перечисление единицы измерения веса
type WeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"
	WeightUnitOz WeightUnit = "oz"
)

var weightUnits = []WeightUnit{
	WeightUnitKg,
	WeightUnitLb,
	WeightUnitOz,
}

// Valid проверяет принадлежность значения перечислению
func (u WeightUnit) Valid() bool {
	for _, known := range weightUnits {
		if u == known {
			return true
		}
	}
	return false
}
