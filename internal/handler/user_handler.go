package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/middleware"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/utils"
)

// UserHandler exposes public profile lookup and account self-service.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register binds the user routes. auth guards the /me endpoints.
func (h *UserHandler) Register(router fiber.Router, auth ...fiber.Handler) {
	router.Get("/link/:link", h.getByLink)

	me := router.Group("/me", auth...)
	me.Put("/data", h.updateData)
	me.Put("/email", h.updateEmail)
	me.Put("/password", h.updatePassword)
	me.Put("/link", h.changeLink)
}

func (h *UserHandler) getByLink(c *fiber.Ctx) error {
	response, err := h.service.GetByLink(withRequestContext(c), c.Params("link"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, response)
}

func (h *UserHandler) updateData(c *fiber.Ctx) error {
	var payload dto.UpdateUserDataRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	response, err := h.service.UpdateData(withRequestContext(c), middleware.UserID(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, response)
}

func (h *UserHandler) updateEmail(c *fiber.Ctx) error {
	var payload dto.UpdateEmailRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	if err := h.service.UpdateEmail(withRequestContext(c), middleware.UserID(c), payload); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}

func (h *UserHandler) updatePassword(c *fiber.Ctx) error {
	var payload dto.UpdatePasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	if err := h.service.UpdatePassword(withRequestContext(c), middleware.UserID(c), payload); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}

func (h *UserHandler) changeLink(c *fiber.Ctx) error {
	var payload dto.UpdateLinkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	if err := h.service.ChangeLink(withRequestContext(c), middleware.UserID(c), payload); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
