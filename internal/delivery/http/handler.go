package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"HolocronCatalogService/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// errorResponse представляет тело ответа с ошибкой; причина присутствует
// только у ошибок хранилища
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// messageResponse представляет тело ответа с сообщением об успехе
type messageResponse struct {
	Message string `json:"message"`
}

// writeError отображает типизированную ошибку приложения на HTTP ответ
func writeError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusBadRequest
	switch kind {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindPersistence:
		status = http.StatusInternalServerError
	}

	response := errorResponse{Message: apperrors.MessageOf(err)}
	if kind == apperrors.KindPersistence {
		if cause := apperrors.CauseOf(err); cause != nil {
			response.Error = cause.Error()
		}
	}

	c.JSON(status, response)
}

// bindBody разбирает JSON тело запроса; пустое тело и пустой объект
// отклоняются одинаково
func bindBody(c *gin.Context, out any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return apperrors.MissingField("No input data provided")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil || len(probe) == 0 {
		return apperrors.MissingField("No input data provided")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

// parseID разбирает числовой параметр пути; нечисловое значение
// эквивалентно отсутствию маршрута
func parseID(c *gin.Context, name, notFoundMessage string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Message: notFoundMessage})
		return 0, false
	}
	return uint(id), true
}
