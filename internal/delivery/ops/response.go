package ops

import (
	domainerrors "homiio/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

type successResponse struct {
	Data any       `json:"data"`
	Meta *metaInfo `json:"meta"`
}

type errorResponse struct {
	Error *domainerrors.ErrorInfo `json:"error"`
	Meta  *metaInfo               `json:"meta"`
}

type metaInfo struct {
	RequestID string `json:"request_id"`
}

func success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, successResponse{
		Data: data,
		Meta: &metaInfo{RequestID: getRequestID(c)},
	})
}

func failure(c echo.Context, statusCode int, code, message string) error {
	return c.JSON(statusCode, errorResponse{
		Error: &domainerrors.ErrorInfo{Code: code, Message: message},
		Meta:  &metaInfo{RequestID: getRequestID(c)},
	})
}
