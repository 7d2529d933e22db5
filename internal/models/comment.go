package models

import "time"

type Comment struct {
	ID        string
	ImageID   int
	UserID    string
	Username  string
	Text      string
	CreatedAt time.Time
}
