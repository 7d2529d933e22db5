package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigallery/internal/models"
)

func TestGenerator_Images(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	g := NewGenerator(42)
	g.now = func() time.Time { return now }

	images := g.Images(12)
	require.Len(t, images, 12)

	for i, img := range images {
		assert.Equal(t, i+1, img.ID)
		assert.Equal(t, titles[i%len(titles)], img.Title)
		assert.Contains(t, authors, img.Author)
		assert.Contains(t, aiTools, img.AITool)
		assert.Contains(t, img.Prompt, img.Title)
		assert.Contains(t, img.URL, "picsum.photos")

		assert.GreaterOrEqual(t, len(img.Tags), 1)
		assert.LessOrEqual(t, len(img.Tags), 4)
		seen := map[string]bool{}
		for _, tag := range img.Tags {
			assert.Contains(t, tagPool, tag)
			assert.False(t, seen[tag], "duplicate tag %s", tag)
			seen[tag] = true
		}

		assert.GreaterOrEqual(t, img.Likes, 0)
		assert.Less(t, img.Likes, 1000)
		assert.Less(t, img.Favorites, 500)
		assert.GreaterOrEqual(t, img.Views, 100)
		assert.Less(t, img.Reactions[models.ReactionHappy], 200)
		assert.Less(t, img.Reactions[models.ReactionConfused], 50)
		assert.Empty(t, img.Comments)

		assert.False(t, img.CreatedAt.After(now))
		assert.True(t, img.CreatedAt.After(now.Add(-maxAgeDays*24*time.Hour)))
	}
}

func TestGenerator_SeedIsDeterministic(t *testing.T) {
	now := time.Now()
	a := NewGenerator(7)
	a.now = func() time.Time { return now }
	b := NewGenerator(7)
	b.now = func() time.Time { return now }

	assert.Equal(t, a.Images(5), b.Images(5))
}

func TestDemoUser(t *testing.T) {
	user := DemoUser()
	assert.Equal(t, "demo", user.Username)
	assert.Equal(t, "demo@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}
