package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sarhne-api/internal/utils"
)

func TestSendSuccessWithStatusFillsEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, map[string]string{"hello": "world"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		IsSuccess     bool              `json:"is_success"`
		StatusCode    int               `json:"status_code"`
		Result        map[string]string `json:"result"`
		ErrorMessages []string          `json:"error_messages"`
	}
	decode(t, resp, &payload)

	require.True(t, payload.IsSuccess)
	require.Equal(t, fiber.StatusCreated, payload.StatusCode)
	require.Equal(t, "world", payload.Result["hello"])
	require.NotNil(t, payload.ErrorMessages)
	require.Empty(t, payload.ErrorMessages)
}

func TestSendErrorCarriesMessages(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "Message not found or access denied")
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload map[string]interface{}
	decode(t, resp, &payload)

	require.Equal(t, false, payload["is_success"])
	require.Equal(t, float64(fiber.StatusNotFound), payload["status_code"])
	require.Nil(t, payload["result"])
	require.Equal(t, []interface{}{"Message not found or access denied"}, payload["error_messages"])
}

func TestSendNoContentHasNoBody(t *testing.T) {
	app := fiber.New()
	app.Put("/", utils.SendNoContent)

	resp := performRequest(t, app, http.MethodPut, "/")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
