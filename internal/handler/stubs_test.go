package handler

import (
	"context"

	"github.com/noah-isme/sarhne-api/internal/dto"
)

type stubAuthService struct {
	register func(context.Context, dto.RegisterRequest) (dto.RegisterResponse, error)
	login    func(context.Context, dto.LoginRequest) (dto.UserLoginResponse, error)
	refresh  func(context.Context, string) (dto.UserLoginResponse, error)
	revoke   func(context.Context, string) (bool, error)
}

func (s *stubAuthService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisterResponse, error) {
	return s.register(ctx, payload)
}

func (s *stubAuthService) Login(ctx context.Context, payload dto.LoginRequest) (dto.UserLoginResponse, error) {
	return s.login(ctx, payload)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (dto.UserLoginResponse, error) {
	return s.refresh(ctx, token)
}

func (s *stubAuthService) Revoke(ctx context.Context, token string) (bool, error) {
	return s.revoke(ctx, token)
}

type stubUserService struct {
	getByLink      func(context.Context, string) (dto.UserResponse, error)
	updateData     func(context.Context, string, dto.UpdateUserDataRequest) (dto.UserResponse, error)
	updateEmail    func(context.Context, string, dto.UpdateEmailRequest) error
	updatePassword func(context.Context, string, dto.UpdatePasswordRequest) error
	changeLink     func(context.Context, string, dto.UpdateLinkRequest) error
}

func (s *stubUserService) GetByLink(ctx context.Context, link string) (dto.UserResponse, error) {
	return s.getByLink(ctx, link)
}

func (s *stubUserService) UpdateData(ctx context.Context, userID string, payload dto.UpdateUserDataRequest) (dto.UserResponse, error) {
	return s.updateData(ctx, userID, payload)
}

func (s *stubUserService) UpdateEmail(ctx context.Context, userID string, payload dto.UpdateEmailRequest) error {
	return s.updateEmail(ctx, userID, payload)
}

func (s *stubUserService) UpdatePassword(ctx context.Context, userID string, payload dto.UpdatePasswordRequest) error {
	return s.updatePassword(ctx, userID, payload)
}

func (s *stubUserService) ChangeLink(ctx context.Context, userID string, payload dto.UpdateLinkRequest) error {
	return s.changeLink(ctx, userID, payload)
}

type stubMessageService struct {
	send           func(context.Context, string, dto.SendMessageRequest) (dto.MessageResponse, error)
	list           func(context.Context, string) ([]dto.MessageResponse, error)
	updateAppeared func(context.Context, uint, string, bool) error
	updateFavorite func(context.Context, uint, string, bool) error
	deleteReceived func(context.Context, uint, string) error
}

func (s *stubMessageService) Send(ctx context.Context, senderID string, payload dto.SendMessageRequest) (dto.MessageResponse, error) {
	return s.send(ctx, senderID, payload)
}

func (s *stubMessageService) ListReceived(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, userID)
}

func (s *stubMessageService) ListSent(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, userID)
}

func (s *stubMessageService) ListFavorited(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, userID)
}

func (s *stubMessageService) ListAppeared(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, userID)
}

func (s *stubMessageService) UpdateAppeared(ctx context.Context, messageID uint, userID string, value bool) error {
	return s.updateAppeared(ctx, messageID, userID, value)
}

func (s *stubMessageService) UpdateFavorite(ctx context.Context, messageID uint, userID string, value bool) error {
	return s.updateFavorite(ctx, messageID, userID, value)
}

func (s *stubMessageService) DeleteReceived(ctx context.Context, messageID uint, userID string) error {
	return s.deleteReceived(ctx, messageID, userID)
}

type stubReplyService struct {
	add    func(context.Context, string, dto.AddReplyRequest) (dto.ReplyResponse, error)
	update func(context.Context, string, uint, dto.UpdateReplyRequest) (dto.ReplyResponse, error)
	remove func(context.Context, string, uint) error
}

func (s *stubReplyService) AddReply(ctx context.Context, userID string, payload dto.AddReplyRequest) (dto.ReplyResponse, error) {
	return s.add(ctx, userID, payload)
}

func (s *stubReplyService) UpdateReply(ctx context.Context, userID string, replyID uint, payload dto.UpdateReplyRequest) (dto.ReplyResponse, error) {
	return s.update(ctx, userID, replyID, payload)
}

func (s *stubReplyService) DeleteReply(ctx context.Context, userID string, replyID uint) error {
	return s.remove(ctx, userID, replyID)
}

type stubReactionService struct {
	react func(context.Context, string, dto.ReactRequest) (dto.UserReactionResponse, error)
	kinds func(context.Context) ([]dto.ReactionResponse, error)
}

func (s *stubReactionService) React(ctx context.Context, userID string, payload dto.ReactRequest) (dto.UserReactionResponse, error) {
	return s.react(ctx, userID, payload)
}

func (s *stubReactionService) ListReactionKinds(ctx context.Context) ([]dto.ReactionResponse, error) {
	return s.kinds(ctx)
}

func (s *stubReactionService) InvalidateCatalog(context.Context) {}
