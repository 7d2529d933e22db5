package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"aigallery/internal/activity"
	"aigallery/internal/ids"
	"aigallery/internal/models"
	"aigallery/internal/observability"
	"aigallery/internal/repository"
)

var ErrUnknownReaction = errors.New("unknown reaction type")

// EventPublisher hands applied interactions to the activity stream.
type EventPublisher interface {
	Publish(ctx context.Context, event activity.Event) error
}

// Outcome reports what a toggle did. Applied is false when the request was
// dropped (nobody logged in, empty comment). Active is the state after the
// toggle.
type Outcome struct {
	Applied bool
	Active  bool
	Image   models.Image
	Comment *models.Comment
}

// InteractionService records likes, favorites, reactions, follows and
// comments. Every toggle flips the caller's state and moves the matching
// counter on the image by one, as a single step.
type InteractionService struct {
	images       *repository.ImageRepository
	users        *repository.UserRepository
	interactions *repository.InteractionRepository
	publisher    EventPublisher
	log          zerolog.Logger
	now          func() time.Time

	mu sync.Mutex
}

func NewInteractionService(
	images *repository.ImageRepository,
	users *repository.UserRepository,
	interactions *repository.InteractionRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		images:       images,
		users:        users,
		interactions: interactions,
		publisher:    publisher,
		log:          log,
		now:          time.Now,
	}
}

func (s *InteractionService) ToggleLike(ctx context.Context, session *models.Session, imageID int) (Outcome, error) {
	return s.toggle(ctx, session, imageID, activity.EventLike, "",
		func(state *models.InteractionState) bool { return state.Liked(imageID) },
		func(state *models.InteractionState, on bool) { setMember(state.Likes, imageID, on) },
		func(image *models.Image, delta int) { image.Likes += delta },
	)
}

func (s *InteractionService) ToggleFavorite(ctx context.Context, session *models.Session, imageID int) (Outcome, error) {
	return s.toggle(ctx, session, imageID, activity.EventFavorite, "",
		func(state *models.InteractionState) bool { return state.Favorited(imageID) },
		func(state *models.InteractionState, on bool) { setMember(state.Favorites, imageID, on) },
		func(image *models.Image, delta int) { image.Favorites += delta },
	)
}

func (s *InteractionService) ToggleReaction(ctx context.Context, session *models.Session, imageID int, reaction models.ReactionType) (Outcome, error) {
	if !session.Authenticated() {
		observability.InteractionsIgnoredTotal.WithLabelValues(string(activity.EventReaction), "anonymous").Inc()
		return Outcome{}, nil
	}
	if !reaction.Valid() {
		return Outcome{}, ErrUnknownReaction
	}
	return s.toggle(ctx, session, imageID, activity.EventReaction, string(reaction),
		func(state *models.InteractionState) bool { return state.Reacted(imageID, reaction) },
		func(state *models.InteractionState, on bool) {
			reactions, ok := state.Reactions[imageID]
			if !ok {
				reactions = make(map[models.ReactionType]bool)
				state.Reactions[imageID] = reactions
			}
			reactions[reaction] = on
		},
		func(image *models.Image, delta int) {
			if image.Reactions == nil {
				image.Reactions = make(map[models.ReactionType]int)
			}
			image.Reactions[reaction] += delta
		},
	)
}

func (s *InteractionService) toggle(
	ctx context.Context,
	session *models.Session,
	imageID int,
	kind activity.EventType,
	detail string,
	isOn func(*models.InteractionState) bool,
	set func(*models.InteractionState, bool),
	count func(*models.Image, int),
) (Outcome, error) {
	if !session.Authenticated() {
		observability.InteractionsIgnoredTotal.WithLabelValues(string(kind), "anonymous").Inc()
		return Outcome{}, nil
	}

	active, image, err := s.flip(ctx, session.UserID, imageID, isOn, set, count)
	if err != nil {
		return Outcome{}, err
	}

	s.record(ctx, activity.Event{
		Type:    kind,
		UserID:  session.UserID,
		ImageID: imageID,
		Detail:  detail,
		Active:  active,
	})
	return Outcome{Applied: true, Active: active, Image: image}, nil
}

// flip applies one toggle and its counter change under s.mu. Publishing
// happens after the lock is released.
func (s *InteractionService) flip(
	ctx context.Context,
	userID string,
	imageID int,
	isOn func(*models.InteractionState) bool,
	set func(*models.InteractionState, bool),
	count func(*models.Image, int),
) (bool, models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := !isOn(s.interactions.Get(ctx, userID))
	delta := -1
	if active {
		delta = 1
	}

	image, err := s.images.Update(ctx, imageID, func(image *models.Image) error {
		count(image, delta)
		return nil
	})
	if err != nil {
		return false, models.Image{}, err
	}

	if err := s.interactions.Update(ctx, userID, func(state *models.InteractionState) error {
		set(state, active)
		return nil
	}); err != nil {
		return false, models.Image{}, err
	}
	return active, image, nil
}

// AddComment appends a comment to the end of the image's comment list.
// Whitespace-only text is dropped without error.
func (s *InteractionService) AddComment(ctx context.Context, session *models.Session, imageID int, text string) (Outcome, error) {
	if !session.Authenticated() {
		observability.InteractionsIgnoredTotal.WithLabelValues(string(activity.EventComment), "anonymous").Inc()
		return Outcome{}, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		observability.InteractionsIgnoredTotal.WithLabelValues(string(activity.EventComment), "empty").Inc()
		return Outcome{}, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return Outcome{}, err
	}

	comment := models.Comment{
		ID:        ids.New(),
		ImageID:   imageID,
		UserID:    user.ID,
		Username:  user.Username,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}

	image, err := s.images.Update(ctx, imageID, func(image *models.Image) error {
		image.Comments = append(image.Comments, comment)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	s.record(ctx, activity.Event{
		Type:    activity.EventComment,
		UserID:  user.ID,
		ImageID: imageID,
		Detail:  comment.ID,
		Active:  true,
	})
	return Outcome{Applied: true, Active: true, Image: image, Comment: &comment}, nil
}

func (s *InteractionService) Comments(ctx context.Context, imageID int) ([]models.Comment, error) {
	image, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	return image.Comments, nil
}

// ToggleFollow flips whether the caller follows author.
func (s *InteractionService) ToggleFollow(ctx context.Context, session *models.Session, author string) (Outcome, error) {
	author = strings.TrimSpace(author)
	if !session.Authenticated() {
		observability.InteractionsIgnoredTotal.WithLabelValues(string(activity.EventFollow), "anonymous").Inc()
		return Outcome{}, nil
	}
	if author == "" {
		observability.InteractionsIgnoredTotal.WithLabelValues(string(activity.EventFollow), "empty").Inc()
		return Outcome{}, nil
	}

	var active bool
	s.mu.Lock()
	err := s.interactions.Update(ctx, session.UserID, func(state *models.InteractionState) error {
		active = !state.Follows(author)
		if active {
			state.Following = append(state.Following, author)
			return nil
		}
		kept := state.Following[:0]
		for _, a := range state.Following {
			if a != author {
				kept = append(kept, a)
			}
		}
		state.Following = kept
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return Outcome{}, err
	}

	s.record(ctx, activity.Event{
		Type:   activity.EventFollow,
		UserID: session.UserID,
		Detail: author,
		Active: active,
	})
	return Outcome{Applied: true, Active: active}, nil
}

// State returns the caller's interaction state; anonymous callers get an
// empty one.
func (s *InteractionService) State(ctx context.Context, session *models.Session) *models.InteractionState {
	if !session.Authenticated() {
		return models.NewInteractionState()
	}
	return s.interactions.Get(ctx, session.UserID)
}

func (s *InteractionService) record(ctx context.Context, event activity.Event) {
	event.At = s.now().UTC()
	observability.InteractionsTotal.WithLabelValues(string(event.Type), observability.StateLabel(event.Active)).Inc()
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("type", string(event.Type)).Int("image_id", event.ImageID).Msg("publish activity failed")
	}
}

func setMember(set map[int]struct{}, id int, on bool) {
	if on {
		set[id] = struct{}{}
		return
	}
	delete(set, id)
}
