package models

import "time"

type ReactionType string

const (
	ReactionHappy    ReactionType = "happy"
	ReactionConfused ReactionType = "confused"
)

// ReactionTypes lists the reactions an image accepts, in display order.
var ReactionTypes = []ReactionType{ReactionHappy, ReactionConfused}

func (r ReactionType) Valid() bool {
	for _, known := range ReactionTypes {
		if r == known {
			return true
		}
	}
	return false
}

type Image struct {
	ID           int
	Title        string
	URL          string
	ThumbnailURL string
	Author       string
	Prompt       string
	AITool       string
	Tags         []string
	Likes        int
	Favorites    int
	Views        int
	Reactions    map[ReactionType]int
	Comments     []Comment
	CreatedAt    time.Time
	Featured     bool
}

func (img Image) HasTag(tag string) bool {
	for _, t := range img.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can read an image without holding the
// repository lock.
func (img Image) Clone() Image {
	out := img
	out.Tags = append([]string(nil), img.Tags...)
	out.Comments = append([]Comment(nil), img.Comments...)
	out.Reactions = make(map[ReactionType]int, len(img.Reactions))
	for k, v := range img.Reactions {
		out.Reactions[k] = v
	}
	return out
}
