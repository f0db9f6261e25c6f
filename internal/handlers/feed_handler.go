package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"
)

// GetFeed renders published projects as RSS.
// GET /feed.xml
func (h *Handler) GetFeed(c *gin.Context) {
	ctx := c.Request.Context()
	profile := h.svc.Profile(ctx).Value
	projects := h.svc.PublishedProjects(ctx).Value

	feed := &feeds.Feed{
		Title:       profile.Name + " | Projects",
		Link:        &feeds.Link{Href: h.siteURL + "/projects"},
		Description: profile.Bio,
		Author:      &feeds.Author{Name: profile.Name},
		Created:     h.now(),
	}
	for _, p := range projects {
		link := h.siteURL + "/projects/" + p.Slug
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.ShortDescription,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		h.logger.Error("feed-render-failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render feed"})
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
