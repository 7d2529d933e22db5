package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"aigallery/internal/gallery"
	"aigallery/internal/models"
	"aigallery/internal/repository"
	"aigallery/internal/view"
)

var ErrLoginRequired = errors.New("login required")

// URLSigner rewrites image URLs, for example to presigned object store URLs.
type URLSigner interface {
	ImageURLs(ctx context.Context, imageID int) (string, string, error)
}

// GalleryService serves the gallery and detail views and moves a session
// between them.
type GalleryService struct {
	images       *repository.ImageRepository
	sessions     *repository.SessionRepository
	interactions *repository.InteractionRepository
	urls         URLSigner
	log          zerolog.Logger
}

func NewGalleryService(
	images *repository.ImageRepository,
	sessions *repository.SessionRepository,
	interactions *repository.InteractionRepository,
	urls URLSigner,
	log zerolog.Logger,
) *GalleryService {
	return &GalleryService{
		images:       images,
		sessions:     sessions,
		interactions: interactions,
		urls:         urls,
		log:          log,
	}
}

func (s *GalleryService) Browse(ctx context.Context, session *models.Session, q gallery.Query) ([]models.Image, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	images, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}
	result := gallery.Apply(images, q)
	for i := range result {
		s.resolveURLs(ctx, &result[i])
	}
	return result, nil
}

func (s *GalleryService) Tags(ctx context.Context, session *models.Session) ([]string, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	images, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}
	return gallery.Tags(images), nil
}

// Detail is one image together with what the caller has toggled on it.
type Detail struct {
	Image     models.Image
	Liked     bool
	Favorited bool
	Reacted   map[models.ReactionType]bool
	Following bool
}

func (s *GalleryService) Detail(ctx context.Context, session *models.Session, imageID int) (Detail, error) {
	if !session.Authenticated() {
		return Detail{}, ErrLoginRequired
	}
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return Detail{}, err
	}
	s.resolveURLs(ctx, &image)

	state := s.interactions.Get(ctx, session.UserID)
	reacted := make(map[models.ReactionType]bool, len(models.ReactionTypes))
	for _, reaction := range models.ReactionTypes {
		reacted[reaction] = state.Reacted(imageID, reaction)
	}

	return Detail{
		Image:     image,
		Liked:     state.Liked(imageID),
		Favorited: state.Favorited(imageID),
		Reacted:   reacted,
		Following: state.Follows(image.Author),
	}, nil
}

// Select opens the detail view for imageID.
func (s *GalleryService) Select(ctx context.Context, session *models.Session, imageID int) (Detail, error) {
	if !session.Authenticated() {
		return Detail{}, ErrLoginRequired
	}
	detail, err := s.Detail(ctx, session, imageID)
	if err != nil {
		return Detail{}, err
	}

	updated := *session
	if err := view.Transition(&updated, view.EventSelect, imageID); err != nil {
		return Detail{}, err
	}
	if err := s.sessions.Update(ctx, updated); err != nil {
		return Detail{}, err
	}
	*session = updated
	return detail, nil
}

// Back closes the detail view.
func (s *GalleryService) Back(ctx context.Context, session *models.Session) error {
	if !session.Authenticated() {
		return ErrLoginRequired
	}
	updated := *session
	if err := view.Transition(&updated, view.EventBack, 0); err != nil {
		return err
	}
	if err := s.sessions.Update(ctx, updated); err != nil {
		return err
	}
	*session = updated
	return nil
}

func (s *GalleryService) resolveURLs(ctx context.Context, image *models.Image) {
	if s.urls == nil {
		return
	}
	full, thumb, err := s.urls.ImageURLs(ctx, image.ID)
	if err != nil {
		s.log.Warn().Err(err).Int("image_id", image.ID).Msg("sign image url failed")
		return
	}
	image.URL = full
	image.ThumbnailURL = thumb
}
