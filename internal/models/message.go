package models

import "time"

// Message is a note delivered to a receiver, optionally from an authenticated sender.
type Message struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SenderID    *string        `gorm:"size:36;index" json:"sender_id"`
	Sender      *User          `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID  string         `gorm:"size:36;index;not null" json:"receiver_id"`
	Receiver    *User          `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	MessageText string         `gorm:"size:500" json:"message_text"`
	ImageURL    string         `gorm:"size:512" json:"image_url"`
	IsFavorite  bool           `gorm:"not null" json:"is_favorite"`
	IsSecretly  bool           `gorm:"not null" json:"is_secretly"`
	IsAppeared  bool           `gorm:"not null" json:"is_appeared"`
	IsDeleted   bool           `gorm:"not null;index" json:"is_deleted"`
	CreatedAt   time.Time      `json:"created_at"`
	Replies     []Reply        `gorm:"foreignKey:MessageID" json:"replies,omitempty"`
	Reactions   []UserReaction `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`
}

// Reply is the receiver's answer to an appeared message.
type Reply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"index;not null" json:"message_id"`
	Message   *Message  `gorm:"foreignKey:MessageID" json:"message,omitempty"`
	ReplyText string    `gorm:"size:500;not null" json:"reply_text"`
	CreatedAt time.Time `json:"created_at"`
}
