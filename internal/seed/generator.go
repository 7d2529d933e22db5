// Package seed synthesizes the demo image collection and the demo account.
// Everything it produces lives in memory and is regenerated on every start.
package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"aigallery/internal/models"
)

var (
	titles = []string{
		"梦幻森林",
		"赛博朋克城市",
		"抽象艺术",
		"未来机甲",
		"水彩风景",
		"魔法少女",
		"星空奇境",
		"古典建筑",
		"科幻战舰",
		"童话世界",
	}
	authors = []string{
		"艺术家小明",
		"创作者小红",
		"设计师小李",
		"概念艺术家",
		"画家小王",
		"插画师小张",
	}
	aiTools = []string{
		"Midjourney V6",
		"DALL-E 3",
		"Stable Diffusion XL",
		"NovelAI",
		"Bing Image Creator",
	}
	tagPool = []string{
		"奇幻",
		"科幻",
		"抽象",
		"写实",
		"动漫",
		"风景",
		"人物",
		"建筑",
		"概念艺术",
		"插画",
	}
)

const maxAgeDays = 30

// Generator produces mock gallery images. A non-zero seed makes the output
// reproducible.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// Images returns count images with ids 1..count.
func (g *Generator) Images(count int) []models.Image {
	now := g.now().UTC()
	images := make([]models.Image, 0, count)
	for i := 0; i < count; i++ {
		images = append(images, g.image(i, now))
	}
	return images
}

func (g *Generator) image(i int, now time.Time) models.Image {
	f := g.faker
	title := titles[i%len(titles)]
	daysBack := f.Number(0, maxAgeDays-1)

	return models.Image{
		ID:           i + 1,
		Title:        title,
		URL:          PlaceholderURL(i, 400+f.Number(0, 199)),
		ThumbnailURL: PlaceholderURL(i, 400+f.Number(0, 199)),
		Author:       f.RandomString(authors),
		Prompt:       fmt.Sprintf("A detailed prompt for %s with various artistic parameters and style descriptions", title),
		AITool:       f.RandomString(aiTools),
		Tags:         g.tags(),
		Likes:        f.Number(0, 999),
		Favorites:    f.Number(0, 499),
		Views:        f.Number(100, 5099),
		Reactions: map[models.ReactionType]int{
			models.ReactionHappy:    f.Number(0, 199),
			models.ReactionConfused: f.Number(0, 49),
		},
		CreatedAt: now.Add(-time.Duration(daysBack) * 24 * time.Hour),
		Featured:  f.Float64Range(0, 1) > 0.8,
	}
}

// tags draws two to four tags; repeated draws collapse so the result is a set.
func (g *Generator) tags() []string {
	n := g.faker.Number(2, 4)
	seen := make(map[string]struct{}, n)
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tag := g.faker.RandomString(tagPool)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func PlaceholderURL(index int, height int) string {
	return fmt.Sprintf("https://picsum.photos/400/%d?random=%d", height, index)
}
