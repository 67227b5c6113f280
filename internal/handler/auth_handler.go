package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/service"
	"github.com/noah-isme/sarhne-api/internal/utils"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	service        service.AuthService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, maxUploadBytes int64, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register binds the auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Post("/refresh-token", h.refresh)
	router.Post("/revoke-token", h.revoke)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	image, err := readImage(c, "image", h.maxUploadBytes)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	payload.Image = image

	response, err := h.service.Register(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}

	response, err := h.service.Login(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, response)
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	var payload dto.RefreshTokenRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, service.MsgInvalidRefresh)
	}

	response, err := h.service.Refresh(withRequestContext(c), payload.Token)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, response)
}

func (h *AuthHandler) revoke(c *fiber.Ctx) error {
	var payload dto.RefreshTokenRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid token")
	}

	revoked, err := h.service.Revoke(withRequestContext(c), payload.Token)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !revoked {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid token")
	}

	return utils.SendSuccess(c, fiber.Map{"revoked": true})
}
