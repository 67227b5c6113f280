package dto

import (
	"sort"
	"time"

	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

// SendMessageRequest is the multipart payload used to send a message.
// IsSecretly defaults to true when omitted.
type SendMessageRequest struct {
	ReceiverID  string          `json:"receiver_id" form:"receiver_id" validate:"required,max=36"`
	MessageText string          `json:"message_text" form:"message_text" validate:"omitempty,max=500"`
	IsSecretly  *bool           `json:"is_secretly" form:"is_secretly"`
	Image       *storage.Upload `json:"-" form:"-"`
}

// Secret resolves the secrecy flag applying the default.
func (r SendMessageRequest) Secret() bool {
	return r.IsSecretly == nil || *r.IsSecretly
}

// UpdateAppearedRequest flips the appeared flag of a received message.
type UpdateAppearedRequest struct {
	IsAppeared *bool `json:"is_appeared" validate:"required"`
}

// UpdateFavoriteRequest flips the favorite flag of a received message.
type UpdateFavoriteRequest struct {
	IsFavorite *bool `json:"is_favorite" validate:"required"`
}

// ReactionCount is the number of reactions of one kind on a message.
type ReactionCount struct {
	ReactionID   uint   `json:"reaction_id"`
	ReactionType string `json:"reaction_type"`
	Count        int    `json:"count"`
}

// MessageReply is a reply embedded in a message projection.
type MessageReply struct {
	ID        uint      `json:"id"`
	ReplyText string    `json:"reply_text"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse is the projection of a message returned by every read path.
type MessageResponse struct {
	ID             uint            `json:"id"`
	Sender         *UserResponse   `json:"sender"`
	Receiver       *UserResponse   `json:"receiver"`
	MessageText    string          `json:"message_text"`
	ImageURL       string          `json:"image_url"`
	IsFavorite     bool            `json:"is_favorite"`
	IsSecretly     bool            `json:"is_secretly"`
	IsAppeared     bool            `json:"is_appeared"`
	CreatedAt      time.Time       `json:"created_at"`
	Replies        []MessageReply  `json:"appeared_replies"`
	ReactionCounts []ReactionCount `json:"reaction_counts"`
}

// NewMessageResponse projects a message, hiding the sender of secret messages.
func NewMessageResponse(message models.Message) MessageResponse {
	out := MessageResponse{
		ID:             message.ID,
		Receiver:       newUserResponsePtr(message.Receiver),
		MessageText:    message.MessageText,
		ImageURL:       message.ImageURL,
		IsFavorite:     message.IsFavorite,
		IsSecretly:     message.IsSecretly,
		IsAppeared:     message.IsAppeared,
		CreatedAt:      message.CreatedAt,
		Replies:        make([]MessageReply, 0, len(message.Replies)),
		ReactionCounts: CountReactions(message.Reactions),
	}
	if !message.IsSecretly {
		out.Sender = newUserResponsePtr(message.Sender)
	}

	for _, reply := range message.Replies {
		out.Replies = append(out.Replies, MessageReply{
			ID:        reply.ID,
			ReplyText: reply.ReplyText,
			CreatedAt: reply.CreatedAt,
		})
	}

	return out
}

// NewMessageResponseSlice projects a list of messages.
func NewMessageResponseSlice(messages []models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewMessageResponse(message))
	}
	return out
}

// CountReactions groups reaction links by kind, ordered by kind id.
func CountReactions(reactions []models.UserReaction) []ReactionCount {
	counts := make(map[uint]*ReactionCount)
	for _, reaction := range reactions {
		entry, ok := counts[reaction.ReactionID]
		if !ok {
			entry = &ReactionCount{ReactionID: reaction.ReactionID, ReactionType: reaction.Reaction.ReactionType}
			counts[reaction.ReactionID] = entry
		}
		entry.Count++
	}

	out := make([]ReactionCount, 0, len(counts))
	for _, entry := range counts {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReactionID < out[j].ReactionID })
	return out
}
