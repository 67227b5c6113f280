package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/middleware"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/utils"
)

// ReplyHandler exposes reply endpoints for message receivers.
type ReplyHandler struct {
	service service.ReplyService
	logger  zerolog.Logger
}

// NewReplyHandler constructs a reply handler.
func NewReplyHandler(service service.ReplyService, logger zerolog.Logger) *ReplyHandler {
	return &ReplyHandler{
		service: service,
		logger:  logger.With().Str("component", "reply_handler").Logger(),
	}
}

// Register binds the reply routes.
func (h *ReplyHandler) Register(router fiber.Router) {
	router.Post("/", h.add)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ReplyHandler) add(c *fiber.Ctx) error {
	var payload dto.AddReplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	response, err := h.service.AddReply(withRequestContext(c), middleware.UserID(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, response)
}

func (h *ReplyHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.UpdateReplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	response, err := h.service.UpdateReply(withRequestContext(c), middleware.UserID(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, response)
}

func (h *ReplyHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParamValue(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteReply(withRequestContext(c), middleware.UserID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
