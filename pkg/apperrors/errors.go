package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind классифицирует ошибки приложения для маппинга на HTTP статусы
type Kind int

const (
	// KindMissingField означает отсутствие обязательного поля в запросе
	KindMissingField Kind = iota
	// KindValidation означает нарушение формата, перечисления или уникальности
	KindValidation
	// KindNotFound означает отсутствие запрошенной сущности
	KindNotFound
	// KindAuthorization означает несовпадение текущего пароля при обновлении
	KindAuthorization
	// KindPersistence означает ошибку хранилища при фиксации транзакции
	KindPersistence
)

// Error представляет типизированную ошибку приложения
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сопоставляет типизированную ошибку с сентинелами пакета:
// ошибки клиента (все, кроме KindPersistence) соответствуют ErrClient,
// ошибки KindNotFound дополнительно соответствуют ErrNotFound
func (e *Error) Is(target error) bool {
	switch target {
	case ErrClient:
		return e.Kind != KindPersistence
	case ErrNotFound, ErrRecordNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// MissingField создает ошибку отсутствующего обязательного поля
func MissingField(message string) *Error {
	return &Error{Kind: KindMissingField, Message: message}
}

// Validation создает ошибку валидации (формат, перечисление, дубликат)
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound создает ошибку отсутствующей сущности
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Authorization создает ошибку неверного текущего пароля
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Persistence создает ошибку хранилища с сохранением причины
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// Список игнорируемых ошибок для механизмов отказоустойчивости
var (
	// ErrNotFound возвращается, когда запись не найдена (обобщенная ошибка)
	ErrNotFound = errors.New("запись не найдена")

	// ErrRecordNotFound возвращается, когда запись не найдена в базе данных
	ErrRecordNotFound = gorm.ErrRecordNotFound

	// ErrClient помечает ошибки, вызванные данными клиента, а не хранилищем;
	// такие ошибки не считаются отказами и не повторяются
	ErrClient = errors.New("ошибка клиента")

	// IgnoredErrors содержит список всех игнорируемых ошибок для circuit breaker
	// и запрещающий список для механизма повторных попыток
	IgnoredErrors = []error{
		ErrNotFound,
		ErrRecordNotFound,
		ErrClient,
	}
)

// KindOf возвращает Kind ошибки; нетипизированные ошибки считаются KindPersistence
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if IsNotFound(err) {
		return KindNotFound
	}
	return KindPersistence
}

// MessageOf возвращает сообщение ошибки для клиента
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// CauseOf возвращает первопричину для KindPersistence, если она есть
func CauseOf(err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Err
	}
	return nil
}

// IsNotFound проверяет, является ли ошибка ошибкой "запись не найдена"
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind == KindNotFound {
		return true
	}

	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}
