package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/service"
)

func TestGetUserByLinkIsPublic(t *testing.T) {
	svc := newTestServices()
	svc.users.getByLink = func(_ context.Context, link string) (dto.UserResponse, error) {
		if link != "alice" {
			return dto.UserResponse{}, serviceError(service.ErrNotFound, service.MsgLinkUserNotFound)
		}
		return dto.UserResponse{ID: "alice-id", Name: "Alice", Gender: models.GenderFemale}, nil
	}
	app := newTestApp(svc)

	status, body := perform(t, app, jsonRequest(http.MethodGet, "/api/v1/users/link/alice", nil, ""))
	require.Equal(t, http.StatusOK, status)
	var profile dto.UserResponse
	require.NoError(t, json.Unmarshal(body.Result, &profile))
	require.Equal(t, "alice-id", profile.ID)

	status, body = perform(t, app, jsonRequest(http.MethodGet, "/api/v1/users/link/ghost", nil, ""))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, []string{service.MsgLinkUserNotFound}, body.ErrorMessages)
}

func TestAccountSelfService(t *testing.T) {
	svc := newTestServices()
	calls := map[string]string{}
	svc.users.updateData = func(_ context.Context, userID string, payload dto.UpdateUserDataRequest) (dto.UserResponse, error) {
		calls["data"] = userID
		return dto.UserResponse{ID: userID, Name: payload.Name, Gender: payload.Gender}, nil
	}
	svc.users.updateEmail = func(_ context.Context, userID string, payload dto.UpdateEmailRequest) error {
		calls["email"] = payload.NewEmail
		return nil
	}
	svc.users.updatePassword = func(context.Context, string, dto.UpdatePasswordRequest) error {
		return serviceError(service.ErrValidation, service.MsgPasswordChange)
	}
	svc.users.changeLink = func(_ context.Context, _ string, payload dto.UpdateLinkRequest) error {
		if payload.Link == "bob" {
			return serviceError(service.ErrConflict, service.MsgLinkTaken)
		}
		calls["link"] = payload.Link
		return nil
	}
	app := newTestApp(svc)
	token := sessionToken(t, "alice-id", models.RoleUser)

	status, _ := perform(t, app, jsonRequest(http.MethodPut, "/api/v1/users/me/data", map[string]string{"name": "Alice"}, ""))
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := perform(t, app, jsonRequest(http.MethodPut, "/api/v1/users/me/data", map[string]string{"name": "Alice", "gender": "Female"}, token))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alice-id", calls["data"])
	var profile dto.UserResponse
	require.NoError(t, json.Unmarshal(body.Result, &profile))
	require.Equal(t, models.GenderFemale, profile.Gender)

	status, _ = perform(t, app, jsonRequest(http.MethodPut, "/api/v1/users/me/email", map[string]string{"new_email": "new@example.com"}, token))
	require.Equal(t, http.StatusNoContent, status)
	require.Equal(t, "new@example.com", calls["email"])

	status, body = perform(t, app, jsonRequest(http.MethodPut, "/api/v1/users/me/password", map[string]string{"current_password": "x", "new_password": "new-password"}, token))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, []string{service.MsgPasswordChange}, body.ErrorMessages)

	status, body = perform(t, app, jsonRequest(http.MethodPut, "/api/v1/users/me/link", map[string]string{"link": "bob"}, token))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, []string{service.MsgLinkTaken}, body.ErrorMessages)

	status, _ = perform(t, app, jsonRequest(http.MethodPut, "/api/v1/users/me/link", map[string]string{"link": "alice-inbox"}, token))
	require.Equal(t, http.StatusNoContent, status)
	require.Equal(t, "alice-inbox", calls["link"])
}
