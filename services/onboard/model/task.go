package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Task struct {
	ID        string                      `gorm:"primarykey" json:"id"`
	Name      string                      `gorm:"index:idx_open_follow_up,unique,where:completed = false" json:"name"`
	Completed bool                        `json:"completed"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	DueDate   *time.Time                  `json:"dueDate"`
	// ThreadID is set on follow-up tasks created by tool handlers. The partial
	// unique index lets repeated tool calls for the same conversation dedup via
	// a conditional insert; user-created tasks have a NULL thread_id and are
	// never constrained by it.
	ThreadID  *string   `gorm:"index:idx_open_follow_up,unique,where:completed = false" json:"-"`
	Order     int64     `gorm:"column:sort_order" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
