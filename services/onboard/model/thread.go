package model

import "time"

// Thread mirrors a conversation thread held by the assistant provider. Only the
// id and the topic it was opened for are kept locally.
type Thread struct {
	ID        string    `gorm:"primarykey" json:"id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
}
