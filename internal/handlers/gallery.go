package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aigallery/internal/gallery"
	"aigallery/internal/middleware"
	"aigallery/internal/view"
)

// Session reports which view the caller is in. Anonymous callers are in the
// login view.
func (h HandlerSet) Session(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if !session.Authenticated() {
		c.JSON(http.StatusOK, sessionResponse{View: view.Initial})
		return
	}

	resp := sessionResponse{
		View:            session.View,
		SelectedImageID: session.SelectedImageID,
	}
	if user, ok := middleware.CurrentUser(c); ok {
		resp.User = toUser(user)
	}
	c.JSON(http.StatusOK, resp)
}

type selectRequest struct {
	ImageID int `json:"imageId" binding:"required"`
}

func (h HandlerSet) SelectImage(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := middleware.CurrentSession(c)
	detail, err := h.gallery.Select(c.Request.Context(), session, req.ImageID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": sessionResponse{View: session.View, SelectedImageID: session.SelectedImageID},
		"detail":  toDetail(detail),
	})
}

func (h HandlerSet) Back(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.gallery.Back(c.Request.Context(), session); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{View: session.View})
}

func (h HandlerSet) Gallery(c *gin.Context) {
	query := gallery.Query{
		Text: c.Query("q"),
		Tag:  c.DefaultQuery("tag", gallery.TagAll),
		Sort: gallery.ParseSort(c.Query("sort")),
	}

	images, err := h.gallery.Browse(c.Request.Context(), middleware.CurrentSession(c), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]imageResponse, 0, len(images))
	for _, img := range images {
		items = append(items, toImage(img))
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"query": gin.H{
			"q":    query.Text,
			"tag":  query.Tag,
			"sort": query.Sort,
		},
	})
}

func (h HandlerSet) Tags(c *gin.Context) {
	tags, err := h.gallery.Tags(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": append([]string{gallery.TagAll}, tags...),
	})
}

func (h HandlerSet) ImageDetail(c *gin.Context) {
	imageID, ok := imageIDParam(c)
	if !ok {
		return
	}

	detail, err := h.gallery.Detail(c.Request.Context(), middleware.CurrentSession(c), imageID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDetail(detail))
}

func imageIDParam(c *gin.Context) (int, bool) {
	imageID, err := strconv.Atoi(c.Param("id"))
	if err != nil || imageID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image_id"})
		return 0, false
	}
	return imageID, true
}
