package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aigallery/internal/middleware"
	"aigallery/internal/models"
	"aigallery/internal/service"
)

type toggleResponse struct {
	Applied bool           `json:"applied"`
	Active  bool           `json:"active"`
	Image   *imageResponse `json:"image,omitempty"`
}

func sendOutcome(c *gin.Context, out service.Outcome) {
	resp := toggleResponse{Applied: out.Applied, Active: out.Active}
	if out.Applied && out.Image.ID != 0 {
		img := toImage(out.Image)
		resp.Image = &img
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) ToggleLike(c *gin.Context) {
	imageID, ok := imageIDParam(c)
	if !ok {
		return
	}
	out, err := h.interactions.ToggleLike(c.Request.Context(), middleware.CurrentSession(c), imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sendOutcome(c, out)
}

func (h HandlerSet) ToggleFavorite(c *gin.Context) {
	imageID, ok := imageIDParam(c)
	if !ok {
		return
	}
	out, err := h.interactions.ToggleFavorite(c.Request.Context(), middleware.CurrentSession(c), imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sendOutcome(c, out)
}

func (h HandlerSet) ToggleReaction(c *gin.Context) {
	imageID, ok := imageIDParam(c)
	if !ok {
		return
	}
	reaction := models.ReactionType(c.Param("type"))
	out, err := h.interactions.ToggleReaction(c.Request.Context(), middleware.CurrentSession(c), imageID, reaction)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sendOutcome(c, out)
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentOutcomeResponse struct {
	Applied  bool              `json:"applied"`
	Comment  *commentResponse  `json:"comment,omitempty"`
	Comments []commentResponse `json:"comments,omitempty"`
}

func (h HandlerSet) AddComment(c *gin.Context) {
	imageID, ok := imageIDParam(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.interactions.AddComment(c.Request.Context(), middleware.CurrentSession(c), imageID, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := commentOutcomeResponse{Applied: out.Applied}
	if out.Comment != nil {
		comment := toComment(*out.Comment)
		resp.Comment = &comment
		resp.Comments = toComments(out.Image.Comments)
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) ListComments(c *gin.Context) {
	imageID, ok := imageIDParam(c)
	if !ok {
		return
	}
	comments, err := h.interactions.Comments(c.Request.Context(), imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": toComments(comments),
	})
}

func (h HandlerSet) ToggleFollow(c *gin.Context) {
	out, err := h.interactions.ToggleFollow(c.Request.Context(), middleware.CurrentSession(c), c.Param("author"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	sendOutcome(c, out)
}

func (h HandlerSet) MyInteractions(c *gin.Context) {
	state := h.interactions.State(c.Request.Context(), middleware.CurrentSession(c))
	c.JSON(http.StatusOK, toInteractionState(state))
}
