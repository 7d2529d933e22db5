package models

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Email        string
	Bio          string
	Avatar       string
	CreatedAt    time.Time
}

type View string

const (
	ViewLogin   View = "login"
	ViewGallery View = "gallery"
	ViewDetail  View = "detail"
)

// Session is the per-caller state that decides which view is shown. A zero
// UserID means nobody is logged in.
type Session struct {
	ID              string
	UserID          string
	View            View
	SelectedImageID int
	CreatedAt       time.Time
	LastSeenAt      time.Time
	ExpiresAt       time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}
