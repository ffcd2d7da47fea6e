package model

import "time"

// Branding is keyed by thread id: it is collected before the customer has
// identified themselves, so the conversation is the only stable key.
type Branding struct {
	ThreadID          string    `gorm:"primarykey" json:"threadId"`
	LogoLink          string    `json:"logoLink,omitempty"`
	PrimaryBrandColor string    `json:"primaryBrandColor,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
