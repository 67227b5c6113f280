package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/middleware"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/utils"
)

// MessageHandler exposes message delivery and inbox endpoints.
type MessageHandler struct {
	service        service.MessageService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewMessageHandler constructs a message handler.
func NewMessageHandler(service service.MessageService, maxUploadBytes int64, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("component", "message_handler").Logger(),
	}
}

// Register binds the message routes. Sending accepts anonymous callers through optional,
// every other route is guarded by auth.
func (h *MessageHandler) Register(router fiber.Router, optional fiber.Handler, auth ...fiber.Handler) {
	router.Post("/", optional, h.send)

	router.Get("/received", guarded(auth, h.listing(h.service.ListReceived))...)
	router.Get("/sent", guarded(auth, h.listing(h.service.ListSent))...)
	router.Get("/favorited", guarded(auth, h.listing(h.service.ListFavorited))...)
	router.Get("/appeared", guarded(auth, h.listing(h.service.ListAppeared))...)
	router.Put("/:id/appeared", guarded(auth, h.updateAppeared)...)
	router.Put("/:id/favorite", guarded(auth, h.updateFavorite)...)
	router.Delete("/:id", guarded(auth, h.deleteReceived)...)
}

func (h *MessageHandler) send(c *fiber.Ctx) error {
	var payload dto.SendMessageRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	image, err := readImage(c, "image", h.maxUploadBytes)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	payload.Image = image

	response, err := h.service.Send(withRequestContext(c), middleware.UserID(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, response)
}

func (h *MessageHandler) listing(list func(ctx context.Context, userID string) ([]dto.MessageResponse, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		messages, err := list(withRequestContext(c), middleware.UserID(c))
		if err != nil {
			return respondError(c, h.logger, err)
		}
		return utils.SendSuccess(c, messages)
	}
}

func (h *MessageHandler) updateAppeared(c *fiber.Ctx) error {
	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.UpdateAppearedRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsAppeared == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "is_appeared is required")
	}

	if err := h.service.UpdateAppeared(withRequestContext(c), id, middleware.UserID(c), *payload.IsAppeared); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}

func (h *MessageHandler) updateFavorite(c *fiber.Ctx) error {
	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.UpdateFavoriteRequest
	if err := c.BodyParser(&payload); err != nil || payload.IsFavorite == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "is_favorite is required")
	}

	if err := h.service.UpdateFavorite(withRequestContext(c), id, middleware.UserID(c), *payload.IsFavorite); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}

func (h *MessageHandler) deleteReceived(c *fiber.Ctx) error {
	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteReceived(withRequestContext(c), id, middleware.UserID(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
