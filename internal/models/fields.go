package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OptionalInt представляет необязательное целочисленное поле запроса.
// Поле различает три состояния: ключ отсутствует, ключ присутствует с
// корректным значением, ключ присутствует с некорректным значением.
// Допускается как JSON-число, так и числовая строка.
type OptionalInt struct {
	present bool
	valid   bool
	value   int64
}

// UnmarshalJSON никогда не возвращает ошибку: некорректное значение
// фиксируется и проверяется на уровне валидации с осмысленным сообщением
func (f *OptionalInt) UnmarshalJSON(data []byte) error {
	f.present = true
	f.valid = false

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := num.Int64(); err == nil {
			f.valid = true
			f.value = v
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			f.valid = true
			f.value = v
		}
	}

	return nil
}

// Present сообщает, присутствовал ли ключ в теле запроса
func (f OptionalInt) Present() bool {
	return f.present
}

// Valid сообщает, удалось ли разобрать значение как целое число
func (f OptionalInt) Valid() bool {
	return f.valid
}

// Value возвращает разобранное значение; осмысленно только при Valid()
func (f OptionalInt) Value() int64 {
	return f.value
}

// OptionalFloat представляет необязательное вещественное поле запроса
// с теми же тремя состояниями, что и OptionalInt
type OptionalFloat struct {
	present bool
	valid   bool
	value   float64
}

// UnmarshalJSON никогда не возвращает ошибку, см. OptionalInt
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	f.present = true
	f.valid = false

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := num.Float64(); err == nil {
			f.valid = true
			f.value = v
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.valid = true
			f.value = v
		}
	}

	return nil
}

// Present сообщает, присутствовал ли ключ в теле запроса
func (f OptionalFloat) Present() bool {
	return f.present
}

// Valid сообщает, удалось ли разобрать значение как число
func (f OptionalFloat) Valid() bool {
	return f.valid
}

// Value возвращает разобранное значение; осмысленно только при Valid()
func (f OptionalFloat) Value() float64 {
	return f.value
}
