package models

import "time"

// Reaction is an entry of the fixed reaction catalog.
type Reaction struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ReactionType string `gorm:"size:50;uniqueIndex;not null" json:"reaction_type"`
}

// DefaultReactionTypes is the catalog seeded at boot, in display order.
var DefaultReactionTypes = []string{"Like", "Love", "Care", "Angry"}

// UserReaction links a user to a message with one reaction kind. The composite
// primary key keeps a single row per (user, message) pair.
type UserReaction struct {
	UserID     string    `gorm:"primaryKey;size:36" json:"user_id"`
	MessageID  uint      `gorm:"primaryKey;autoIncrement:false" json:"message_id"`
	ReactionID uint      `gorm:"index;not null" json:"reaction_id"`
	Reaction   Reaction  `gorm:"foreignKey:ReactionID" json:"reaction"`
	ReactedAt  time.Time `gorm:"not null" json:"reacted_at"`
}
