// Package view holds the screen state machine: login, gallery and detail.
package view

import (
	"errors"
	"fmt"

	"aigallery/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid view transition")
	ErrNoImageSelected   = errors.New("no image selected")
)

type Event string

const (
	EventAuthenticated Event = "authenticated"
	EventSelect        Event = "select"
	EventBack          Event = "back"
	EventLogout        Event = "logout"
)

// Initial is the view of a caller that has not logged in.
const Initial = models.ViewLogin

// Transition applies ev to the session's view. imageID is only read for
// EventSelect. The session is modified only when the transition is valid.
func Transition(session *models.Session, ev Event, imageID int) error {
	next, selected, err := next(session.View, session.SelectedImageID, ev, imageID)
	if err != nil {
		return err
	}
	session.View = next
	session.SelectedImageID = selected
	if next == models.ViewLogin {
		session.UserID = ""
	}
	return nil
}

func next(current models.View, selected int, ev Event, imageID int) (models.View, int, error) {
	switch {
	case current == models.ViewLogin && ev == EventAuthenticated:
		return models.ViewGallery, 0, nil
	case (current == models.ViewGallery || current == models.ViewDetail) && ev == EventSelect:
		if imageID <= 0 {
			return current, selected, ErrNoImageSelected
		}
		return models.ViewDetail, imageID, nil
	case current == models.ViewDetail && ev == EventBack:
		return models.ViewGallery, 0, nil
	case (current == models.ViewGallery || current == models.ViewDetail) && ev == EventLogout:
		return models.ViewLogin, 0, nil
	}
	return current, selected, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev, current)
}
