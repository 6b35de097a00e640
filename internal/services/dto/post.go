package dto

import "time"

type CreatePostRequest struct {
	Title       string     `json:"title" validate:"required,min=3"`
	Description string     `json:"description"`
	RewardMin   float64    `json:"reward_min" validate:"min=0"`
	RewardMax   float64    `json:"reward_max" validate:"min=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Platforms   []string   `json:"platforms"`
	Categories  []string   `json:"categories"`
	Guidelines  string     `json:"guidelines"`
}

type UpdatePostRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	RewardMin   *float64   `json:"reward_min,omitempty"`
	RewardMax   *float64   `json:"reward_max,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Guidelines  *string    `json:"guidelines,omitempty"`
}

type UpdatePostStatusRequest struct {
	Status string `json:"status" validate:"required,is-post-status"`
}
