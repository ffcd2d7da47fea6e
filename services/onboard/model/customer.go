package model

import "time"

// Customer is the onboarding interview record, keyed by email since that is the
// most specific identity a conversation yields.
type Customer struct {
	Email        string    `gorm:"primarykey" json:"email"`
	Name         string    `json:"customerName"`
	CompanyName  string    `json:"companyName,omitempty"`
	ProjectNeeds string    `json:"projectNeeds"`
	Timeline     string    `json:"timeline,omitempty"`
	Budget       string    `json:"budget,omitempty"`
	ThreadID     string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
