package dto

import (
	"time"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// ReactionResponse is one entry of the reaction catalog.
type ReactionResponse struct {
	ID           uint   `json:"id"`
	ReactionType string `json:"reaction_type"`
}

// NewReactionResponseSlice converts catalog rows into DTOs.
func NewReactionResponseSlice(reactions []models.Reaction) []ReactionResponse {
	out := make([]ReactionResponse, 0, len(reactions))
	for _, reaction := range reactions {
		out = append(out, ReactionResponse{ID: reaction.ID, ReactionType: reaction.ReactionType})
	}
	return out
}

// ReactRequest applies a reaction kind to a message.
type ReactRequest struct {
	MessageID  uint `json:"message_id" validate:"required"`
	ReactionID uint `json:"reaction_id" validate:"required"`
}

// UserReactionResponse is the stored reaction of a user on a message.
type UserReactionResponse struct {
	UserID    string           `json:"user_id"`
	MessageID uint             `json:"message_id"`
	Reaction  ReactionResponse `json:"reaction"`
	ReactedAt time.Time        `json:"reacted_at"`
}

// NewUserReactionResponse converts a reaction link into a DTO.
func NewUserReactionResponse(reaction models.UserReaction) UserReactionResponse {
	return UserReactionResponse{
		UserID:    reaction.UserID,
		MessageID: reaction.MessageID,
		Reaction: ReactionResponse{
			ID:           reaction.ReactionID,
			ReactionType: reaction.Reaction.ReactionType,
		},
		ReactedAt: reaction.ReactedAt,
	}
}
