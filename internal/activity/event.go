// Package activity carries interaction events from the api to the worker over
// a redis stream.
package activity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type EventType string

const (
	EventLike     EventType = "like"
	EventFavorite EventType = "favorite"
	EventReaction EventType = "reaction"
	EventComment  EventType = "comment"
	EventFollow   EventType = "follow"
	EventDigest   EventType = "digest"
)

// Event is one applied interaction. Detail holds the reaction type, the
// followed author or the comment id depending on Type. Active reports the
// state after a toggle.
type Event struct {
	Type    EventType
	UserID  string
	ImageID int
	Detail  string
	Active  bool
	At      time.Time
}

// payload is the stream representation; redis hands every field back as a
// string.
type payload struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	ImageID string `json:"imageId"`
	Detail  string `json:"detail"`
	Active  string `json:"active"`
	At      string `json:"at"`
}

func (e Event) Values() map[string]interface{} {
	return map[string]interface{}{
		"type":    string(e.Type),
		"userId":  e.UserID,
		"imageId": strconv.Itoa(e.ImageID),
		"detail":  e.Detail,
		"active":  strconv.FormatBool(e.Active),
		"at":      e.At.UTC().Format(time.RFC3339Nano),
	}
}

func DecodeEvent(values map[string]interface{}) (Event, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return Event{}, err
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Event{}, err
	}

	event := Event{
		Type:   EventType(p.Type),
		UserID: p.UserID,
		Detail: p.Detail,
	}
	if p.ImageID != "" {
		if event.ImageID, err = strconv.Atoi(p.ImageID); err != nil {
			return Event{}, fmt.Errorf("image id: %w", err)
		}
	}
	if p.Active != "" {
		if event.Active, err = strconv.ParseBool(p.Active); err != nil {
			return Event{}, fmt.Errorf("active: %w", err)
		}
	}
	if p.At != "" {
		if event.At, err = time.Parse(time.RFC3339Nano, p.At); err != nil {
			return Event{}, fmt.Errorf("at: %w", err)
		}
	}
	return event, nil
}
