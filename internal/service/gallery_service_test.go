package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aigallery/internal/gallery"
	"aigallery/internal/models"
	"aigallery/internal/repository"
	"aigallery/internal/view"
)

func TestGalleryService_BrowseRequiresLogin(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.gallery.Browse(context.Background(), nil, gallery.Query{})
	assert.ErrorIs(t, err, ErrLoginRequired)

	_, err = f.gallery.Tags(context.Background(), &models.Session{View: models.ViewLogin})
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestGalleryService_Browse(t *testing.T) {
	f := newFixture(t, nil)
	session := f.login(t, "demo", "demo123")

	images, err := f.gallery.Browse(context.Background(), session, gallery.Query{Tag: "科幻", Sort: gallery.SortPopular})
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, 3, images[0].ID)
	assert.Equal(t, 2, images[1].ID)

	images, err = f.gallery.Browse(context.Background(), session, gallery.Query{Text: "赛博", Tag: gallery.TagAll})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "赛博朋克城市", images[0].Title)

	tags, err := f.gallery.Tags(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, []string{"奇幻", "科幻", "人物"}, tags)
}

func TestGalleryService_SelectAndBack(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	session := f.login(t, "demo", "demo123")

	_, err := f.tracker.ToggleLike(ctx, session, 2)
	require.NoError(t, err)
	_, err = f.tracker.ToggleFollow(ctx, session, "创作者小红")
	require.NoError(t, err)

	detail, err := f.gallery.Select(ctx, session, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ViewDetail, session.View)
	assert.Equal(t, 2, session.SelectedImageID)
	assert.True(t, detail.Liked)
	assert.False(t, detail.Favorited)
	assert.True(t, detail.Following)
	assert.False(t, detail.Reacted[models.ReactionHappy])

	stored, err := f.sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ViewDetail, stored.View)

	require.NoError(t, f.gallery.Back(ctx, session))
	assert.Equal(t, models.ViewGallery, session.View)
	assert.Zero(t, session.SelectedImageID)

	err = f.gallery.Back(ctx, session)
	assert.ErrorIs(t, err, view.ErrInvalidTransition)
}

func TestGalleryService_SelectUnknownImageKeepsView(t *testing.T) {
	f := newFixture(t, nil)
	session := f.login(t, "demo", "demo123")

	_, err := f.gallery.Select(context.Background(), session, 77)
	assert.ErrorIs(t, err, repository.ErrImageNotFound)
	assert.Equal(t, models.ViewGallery, session.View)
}

type stubSigner struct{ err error }

func (s stubSigner) ImageURLs(_ context.Context, id int) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "https://cdn.example/full", "https://cdn.example/thumb", nil
}

func TestGalleryService_SignsURLs(t *testing.T) {
	f := newFixture(t, nil)
	session := f.login(t, "demo", "demo123")

	f.gallery.urls = stubSigner{}
	detail, err := f.gallery.Detail(context.Background(), session, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/full", detail.Image.URL)
	assert.Equal(t, "https://cdn.example/thumb", detail.Image.ThumbnailURL)

	f.gallery.urls = stubSigner{err: errors.New("boom")}
	images, err := f.gallery.Browse(context.Background(), session, gallery.Query{})
	require.NoError(t, err)
	assert.Empty(t, images[0].URL, "fixture images carry no placeholder url")
}
