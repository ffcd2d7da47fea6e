package entity

import "time"

type TaskCreateRequest struct {
	Name    string     `json:"name"`
	Tags    []string   `json:"tags"`
	DueDate *time.Time `json:"dueDate"`
}

type TaskDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
