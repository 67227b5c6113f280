package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/identity"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

func (e *testEnv) gateway() identity.Gateway {
	return identity.NewGateway(e.users, "identity-secret", zerolog.Nop())
}

func (e *testEnv) authService(t *testing.T) (AuthService, *tokenService) {
	t.Helper()
	tokens := newTestTokenService(t)
	return NewAuthService(e.gateway(), e.users, e.refreshTokens, tokens, e.files, e.validate, zerolog.Nop()), tokens
}

func registerRequest(t *testing.T, name string) dto.RegisterRequest {
	t.Helper()
	upload, err := storage.NewUpload(name+".png", pngBytes, 0)
	require.NoError(t, err)
	return dto.RegisterRequest{
		UserName: name,
		Email:    name + "@example.com",
		Password: "secret-pass",
		Gender:   models.GenderMale,
		Name:     strings.ToUpper(name[:1]) + name[1:],
		Image:    upload,
	}
}

func TestAuthServiceRegister(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := env.authService(t)
	ctx := context.Background()

	response, err := svc.Register(ctx, registerRequest(t, "alice"))
	require.NoError(t, err)
	require.Equal(t, dto.RegisterResponse{Name: "Alice", Email: "alice@example.com", UserName: "alice"}, response)

	stored, err := env.users.GetByUserName(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", stored.Link)
	require.NotEqual(t, "secret-pass", stored.PasswordHash)
	require.Equal(t, []string{models.RoleUser}, []string(stored.Roles))
	require.True(t, strings.HasPrefix(stored.ImageURL, "/"+storage.UserImagesFolder+"/alice_"))
	require.True(t, env.files.has(stored.ImageURL))
}

func TestAuthServiceRegisterRejections(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := env.authService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(t, "alice"))
	require.NoError(t, err)

	noImage := registerRequest(t, "bob")
	noImage.Image = nil
	_, err = svc.Register(ctx, noImage)
	requireServiceError(t, err, ErrValidation, MsgImageRequired)

	sameEmail := registerRequest(t, "bob")
	sameEmail.Email = "ALICE@example.com"
	_, err = svc.Register(ctx, sameEmail)
	requireServiceError(t, err, ErrValidation, MsgEmailExists)

	sameName := registerRequest(t, "bob")
	sameName.UserName = "alice"
	_, err = svc.Register(ctx, sameName)
	requireServiceError(t, err, ErrValidation, MsgUserNameTaken)

	sameLink := registerRequest(t, "bob")
	sameLink.Link = "alice"
	_, err = svc.Register(ctx, sameLink)
	requireServiceError(t, err, ErrConflict, MsgLinkTaken)

	badGender := registerRequest(t, "bob")
	badGender.Gender = "Other"
	_, err = svc.Register(ctx, badGender)
	requireValidationErrors(t, err)

	_, err = env.users.GetByUserName(ctx, "bob")
	require.Error(t, err)
}

func TestAuthServiceRegisterReportsImageStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.files.saveErr = errors.New("disk full")
	svc, _ := env.authService(t)

	_, err := svc.Register(context.Background(), registerRequest(t, "alice"))
	require.Error(t, err)
	_, ok := Message(err)
	require.False(t, ok)
}

func TestAuthServiceLogin(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := env.authService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(t, "alice"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	requireServiceError(t, err, ErrValidation, MsgUserNotExist)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	requireServiceError(t, err, ErrUnauthorized, MsgInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "not-an-email", Password: "secret-pass"})
	requireValidationErrors(t, err)

	session, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	require.Equal(t, "alice", session.DisplayName)
	require.Equal(t, "alice@example.com", session.Email)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.RefreshToken)
	require.True(t, session.RefreshTokenExpiration.After(time.Now()))

	var count int64
	require.NoError(t, env.db.Model(&models.RefreshToken{}).Where("user_id = ?", session.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAuthServiceRefreshIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := env.authService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(t, "alice"))
	require.NoError(t, err)
	session, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, session.ID, rotated.ID)
	require.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	require.NotEmpty(t, rotated.Token)

	_, err = svc.Refresh(ctx, session.RefreshToken)
	requireServiceError(t, err, ErrUnauthorized, MsgInvalidRefresh)

	again, err := svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, rotated.RefreshToken, again.RefreshToken)
}

func TestAuthServiceRefreshRejectsUnknownAndExpiredTokens(t *testing.T) {
	env := newTestEnv(t)
	svc, tokens := env.authService(t)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "")
	requireServiceError(t, err, ErrUnauthorized, MsgInvalidRefresh)

	_, err = svc.Refresh(ctx, "does-not-exist")
	requireServiceError(t, err, ErrUnauthorized, MsgInvalidRefresh)

	_, err = svc.Register(ctx, registerRequest(t, "alice"))
	require.NoError(t, err)
	session, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(241 * time.Hour) }
	_, err = svc.Refresh(ctx, session.RefreshToken)
	requireServiceError(t, err, ErrUnauthorized, MsgInvalidRefresh)
}

func TestAuthServiceRevoke(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := env.authService(t)
	ctx := context.Background()

	revoked, err := svc.Revoke(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = svc.Register(ctx, registerRequest(t, "alice"))
	require.NoError(t, err)
	first, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	revoked, err = svc.Revoke(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = svc.Revoke(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	requireServiceError(t, err, ErrUnauthorized, MsgInvalidRefresh)

	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestAuthServiceRegisterCleansProfileText(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := env.authService(t)
	ctx := context.Background()

	request := registerRequest(t, "alice")
	request.Name = "<b>Alice</b> & Co"
	request.DetailsAboutMe = "it's <script>alert(1)</script>me <3"
	response, err := svc.Register(ctx, request)
	require.NoError(t, err)
	require.Equal(t, "Alice & Co", response.Name)

	stored, err := env.users.GetByUserName(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice & Co", stored.Name)
	require.Equal(t, "it's me <3", stored.DetailsAboutMe)
}
