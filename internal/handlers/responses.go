package handlers

import (
	"sort"
	"time"

	"aigallery/internal/models"
	"aigallery/internal/service"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type imageResponse struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	ThumbnailURL string         `json:"thumbnail"`
	Author       string         `json:"author"`
	Prompt       string         `json:"prompt"`
	AITool       string         `json:"aiTool"`
	Tags         []string       `json:"tags"`
	Likes        int            `json:"likes"`
	Favorites    int            `json:"favorites"`
	Views        int            `json:"views"`
	Reactions    map[string]int `json:"reactions"`
	CommentCount int            `json:"commentCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	Featured     bool           `json:"featured"`
}

type sessionResponse struct {
	View            models.View   `json:"view"`
	SelectedImageID int           `json:"selectedImageId,omitempty"`
	User            *userResponse `json:"user,omitempty"`
}

type detailResponse struct {
	Image     imageResponse     `json:"image"`
	Comments  []commentResponse `json:"comments"`
	Liked     bool              `json:"liked"`
	Favorited bool              `json:"favorited"`
	Reacted   map[string]bool   `json:"reacted"`
	Following bool              `json:"following"`
}

type interactionStateResponse struct {
	Likes     []int                   `json:"likes"`
	Favorites []int                   `json:"favorites"`
	Reactions map[int]map[string]bool `json:"reactions"`
	Following []string                `json:"following"`
}

func toUser(user models.User) *userResponse {
	return &userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Bio:      user.Bio,
		Avatar:   user.Avatar,
	}
}

func toImage(img models.Image) imageResponse {
	reactions := make(map[string]int, len(models.ReactionTypes))
	for _, reaction := range models.ReactionTypes {
		reactions[string(reaction)] = img.Reactions[reaction]
	}
	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}
	return imageResponse{
		ID:           img.ID,
		Title:        img.Title,
		URL:          img.URL,
		ThumbnailURL: img.ThumbnailURL,
		Author:       img.Author,
		Prompt:       img.Prompt,
		AITool:       img.AITool,
		Tags:         tags,
		Likes:        img.Likes,
		Favorites:    img.Favorites,
		Views:        img.Views,
		Reactions:    reactions,
		CommentCount: len(img.Comments),
		CreatedAt:    img.CreatedAt,
		Featured:     img.Featured,
	}
}

func toComments(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toComment(comment))
	}
	return out
}

func toComment(comment models.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		Author:    comment.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

func toDetail(detail service.Detail) detailResponse {
	reacted := make(map[string]bool, len(detail.Reacted))
	for reaction, on := range detail.Reacted {
		reacted[string(reaction)] = on
	}
	return detailResponse{
		Image:     toImage(detail.Image),
		Comments:  toComments(detail.Image.Comments),
		Liked:     detail.Liked,
		Favorited: detail.Favorited,
		Reacted:   reacted,
		Following: detail.Following,
	}
}

func toInteractionState(state *models.InteractionState) interactionStateResponse {
	resp := interactionStateResponse{
		Likes:     sortedIDs(state.Likes),
		Favorites: sortedIDs(state.Favorites),
		Reactions: make(map[int]map[string]bool, len(state.Reactions)),
		Following: append([]string{}, state.Following...),
	}
	for imageID, reactions := range state.Reactions {
		converted := make(map[string]bool, len(reactions))
		for reaction, on := range reactions {
			converted[string(reaction)] = on
		}
		resp.Reactions[imageID] = converted
	}
	return resp
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
