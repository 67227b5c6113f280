package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	IsSuccess     bool        `json:"is_success"`
	StatusCode    int         `json:"status_code"`
	Result        interface{} `json:"result"`
	ErrorMessages []string    `json:"error_messages"`
}

// SendSuccess sends a 200 envelope carrying the result.
func SendSuccess(c *fiber.Ctx, result interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, result)
}

// SendSuccessWithStatus sends a success envelope using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, result interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		IsSuccess:     true,
		StatusCode:    status,
		Result:        result,
		ErrorMessages: []string{},
	})
}

// SendNoContent acknowledges a state change without a body.
func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError sends an error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, messages ...string) error {
	if len(messages) == 0 {
		messages = []string{"error"}
	}

	return c.Status(status).JSON(APIResponse{
		IsSuccess:     false,
		StatusCode:    status,
		ErrorMessages: messages,
	})
}
