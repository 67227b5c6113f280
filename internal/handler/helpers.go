package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/noah-isme/sarhne-api/internal/middleware"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/storage"
	"github.com/noah-isme/sarhne-api/internal/utils"
)

const (
	msgUnexpected     = "An unexpected error occurred."
	msgInvalidPayload = "invalid payload"
)

func withRequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// guarded prepends route middleware to handler.
func guarded(middlewares []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	return append(append(make([]fiber.Handler, 0, len(middlewares)+1), middlewares...), handler)
}

func parseUintParamValue(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	if value == "" {
		return 0, fmt.Errorf("%s required", key)
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(parsed), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if fieldErr.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return messages
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the envelope for err. Unknown failures are logged and hidden.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	if isValidationError(err) {
		return utils.SendError(c, fiber.StatusBadRequest, validationMessages(err)...)
	}

	if message, ok := service.Message(err); ok {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			requestLogger(logger, c).Error().Err(err).Msg("request failed")
		}
		return utils.SendError(c, status, message)
	}

	requestLogger(logger, c).Error().Err(err).Msg("unexpected failure")
	return utils.SendError(c, fiber.StatusInternalServerError, msgUnexpected)
}

// readImage loads the optional multipart image field. Only a missing field or a
// non-multipart body count as no image; a broken form is rejected.
func readImage(c *fiber.Ctx, field string, maxBytes int64) (*storage.Upload, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, errors.New(msgInvalidPayload)
	}

	upload, err := storage.ReadUpload(file, maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrImageTooLarge):
			return nil, fmt.Errorf("image exceeds %d bytes", maxBytes)
		case errors.Is(err, storage.ErrInvalidImage):
			return nil, errors.New(service.MsgInvalidImage)
		}
		return nil, err
	}
	return upload, nil
}
