package ops

import (
	"log/slog"
	"net/http"
	"time"

	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	headerXRequestID = "X-Request-Id"
	keyRequestID     = "request_id"
)

func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(headerXRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(keyRequestID, id)
		c.Response().Header().Set(headerXRequestID, id)

		return next(c)
	}
}

func getRequestID(c echo.Context) string {
	id, _ := c.Get(keyRequestID).(string)

	return id
}

// accessLog logs every request in debug mode; otherwise only failed ones.
func accessLog(logger *slog.Logger, debug bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if !debug && status < 400 {
				return nil
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(c.Request().Context(), level, "HTTP Request",
				slog.String("request_id", getRequestID(c)),
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
			)

			return nil
		}
	}
}

// errorHandler renders AppErrors with their own status and hides everything else behind a 500.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			_ = failure(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())

			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message := "An error occurred"
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
			_ = failure(c, httpErr.Code, "HTTP_ERROR", message)

			return
		}

		logger.Error("Unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
		_ = failure(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later")
	}
}
