// Package gallery derives the displayed image grid from the full collection.
package gallery

import (
	"sort"
	"strings"

	"aigallery/internal/models"
)

type SortKey string

const (
	SortLatest  SortKey = "latest"
	SortPopular SortKey = "popular"
	SortViews   SortKey = "views"
)

// TagAll disables the tag filter.
const TagAll = "all"

type Query struct {
	Text string
	Tag  string
	Sort SortKey
}

// ParseSort maps a user supplied key to a SortKey. Unknown keys fall back to
// SortLatest.
func ParseSort(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortPopular:
		return SortPopular
	case SortViews:
		return SortViews
	default:
		return SortLatest
	}
}

// Apply filters images by q and returns them in display order. The input
// slice is not modified. Equal sort keys keep their input order.
func Apply(images []models.Image, q Query) []models.Image {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	tag := strings.TrimSpace(q.Tag)

	out := make([]models.Image, 0, len(images))
	for _, image := range images {
		if !matchesText(image, needle) {
			continue
		}
		if tag != "" && tag != TagAll && !image.HasTag(tag) {
			continue
		}
		out = append(out, image)
	}

	sort.SliceStable(out, less(out, q.Sort))
	return out
}

func matchesText(image models.Image, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(image.Title), needle) ||
		strings.Contains(strings.ToLower(image.Author), needle) {
		return true
	}
	for _, tag := range image.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func less(images []models.Image, key SortKey) func(i, j int) bool {
	switch key {
	case SortPopular:
		return func(i, j int) bool { return images[i].Likes > images[j].Likes }
	case SortViews:
		return func(i, j int) bool { return images[i].Views > images[j].Views }
	default:
		return func(i, j int) bool { return images[i].CreatedAt.After(images[j].CreatedAt) }
	}
}

// Tags returns every distinct tag in the order it first appears.
func Tags(images []models.Image) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, image := range images {
		for _, tag := range image.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
