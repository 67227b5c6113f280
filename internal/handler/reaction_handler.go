package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/middleware"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/utils"
)

// ReactionHandler exposes the reaction catalog and the react endpoint.
type ReactionHandler struct {
	service service.ReactionService
	logger  zerolog.Logger
}

// NewReactionHandler constructs a reaction handler.
func NewReactionHandler(service service.ReactionService, logger zerolog.Logger) *ReactionHandler {
	return &ReactionHandler{
		service: service,
		logger:  logger.With().Str("component", "reaction_handler").Logger(),
	}
}

// Register binds the reaction routes. auth guards reacting.
func (h *ReactionHandler) Register(router fiber.Router, auth ...fiber.Handler) {
	router.Get("/", h.list)
	router.Post("/", guarded(auth, h.react)...)
}

func (h *ReactionHandler) list(c *fiber.Ctx) error {
	kinds, err := h.service.ListReactionKinds(withRequestContext(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, kinds)
}

func (h *ReactionHandler) react(c *fiber.Ctx) error {
	var payload dto.ReactRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	response, err := h.service.React(withRequestContext(c), middleware.UserID(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, response)
}
