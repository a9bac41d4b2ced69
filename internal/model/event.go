package model

import "time"

// PhotoUploaded is published after a photo record is stored.
type PhotoUploaded struct {
	PhotoID  string    `json:"photo_id"`
	UserID   string    `json:"user_id"`
	Link     string    `json:"link"`
	IsPublic bool      `json:"is_public"`
	Date     time.Time `json:"date"`
}
