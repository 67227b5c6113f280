package dto

import (
	"time"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// AddReplyRequest replies to an appeared message.
type AddReplyRequest struct {
	MessageID uint   `json:"message_id" validate:"required"`
	ReplyText string `json:"reply_text" validate:"required,max=500"`
}

// UpdateReplyRequest edits the text of an existing reply.
type UpdateReplyRequest struct {
	ReplyText string `json:"reply_text" validate:"required,max=500"`
}

// AppearedMessageResponse is the parent message embedded in a reply projection.
type AppearedMessageResponse struct {
	ID          uint          `json:"id"`
	Sender      *UserResponse `json:"sender"`
	MessageText string        `json:"message_text"`
	ImageURL    string        `json:"image_url"`
	IsSecretly  bool          `json:"is_secretly"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ReplyResponse is the reply composite returned to the receiver.
type ReplyResponse struct {
	ID        uint                     `json:"id"`
	ReplyText string                   `json:"reply_text"`
	CreatedAt time.Time                `json:"created_at"`
	Message   *AppearedMessageResponse `json:"message"`
}

// NewReplyResponse projects a reply together with its parent message.
// The parent sender is hidden when the message is secret.
func NewReplyResponse(reply models.Reply) ReplyResponse {
	out := ReplyResponse{
		ID:        reply.ID,
		ReplyText: reply.ReplyText,
		CreatedAt: reply.CreatedAt,
	}

	if reply.Message != nil {
		parent := AppearedMessageResponse{
			ID:          reply.Message.ID,
			MessageText: reply.Message.MessageText,
			ImageURL:    reply.Message.ImageURL,
			IsSecretly:  reply.Message.IsSecretly,
			CreatedAt:   reply.Message.CreatedAt,
		}
		if !reply.Message.IsSecretly {
			parent.Sender = newUserResponsePtr(reply.Message.Sender)
		}
		out.Message = &parent
	}

	return out
}
