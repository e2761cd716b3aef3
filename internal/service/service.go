package service

import (
	"errors"

	"HolocronCatalogService/pkg/apperrors"
)

// wrapPersistence оборачивает ошибку хранилища в типизированную ошибку
// с сообщением для клиента. Ошибки, вызванные данными клиента,
// возвращаются без изменений.
func wrapPersistence(message string, err error) error {
	if errors.Is(err, apperrors.ErrClient) {
		return err
	}
	return apperrors.Persistence(message, err)
}
