package models

// InteractionState is what one user has toggled during the life of the
// process. It is lost on restart.
type InteractionState struct {
	Likes     map[int]struct{}
	Favorites map[int]struct{}
	Reactions map[int]map[ReactionType]bool
	Following []string
}

func NewInteractionState() *InteractionState {
	return &InteractionState{
		Likes:     make(map[int]struct{}),
		Favorites: make(map[int]struct{}),
		Reactions: make(map[int]map[ReactionType]bool),
	}
}

func (s *InteractionState) Liked(imageID int) bool {
	_, ok := s.Likes[imageID]
	return ok
}

func (s *InteractionState) Favorited(imageID int) bool {
	_, ok := s.Favorites[imageID]
	return ok
}

func (s *InteractionState) Reacted(imageID int, reaction ReactionType) bool {
	return s.Reactions[imageID][reaction]
}

func (s *InteractionState) Follows(author string) bool {
	for _, a := range s.Following {
		if a == author {
			return true
		}
	}
	return false
}

func (s *InteractionState) Clone() *InteractionState {
	out := NewInteractionState()
	for id := range s.Likes {
		out.Likes[id] = struct{}{}
	}
	for id := range s.Favorites {
		out.Favorites[id] = struct{}{}
	}
	for id, reactions := range s.Reactions {
		copied := make(map[ReactionType]bool, len(reactions))
		for k, v := range reactions {
			copied[k] = v
		}
		out.Reactions[id] = copied
	}
	out.Following = append([]string(nil), s.Following...)
	return out
}
