package model

import "gorm.io/gorm"

// Message is a direct message between two users. Division broadcasts are
// stored as one Message per recipient.
type Message struct {
	gorm.Model
	SenderID   string `json:"sender_id" gorm:"type:char(36);index;not null"`
	ReceiverID string `json:"receiver_id" gorm:"type:char(36);index;not null"`
	Text       string `json:"text" gorm:"not null"`
	IsRead     bool   `json:"is_read" gorm:"default:false"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}
