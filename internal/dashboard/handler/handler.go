package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scratchboard/dashboard/internal/dashboard"
	"github.com/scratchboard/dashboard/pkg/apperr"
	"github.com/scratchboard/dashboard/pkg/logger"
)

// Service is the part of the dashboard service the routes use.
type Service interface {
	Dashboard(ctx context.Context) (*dashboard.View, error)
	ListLinks(ctx context.Context) ([]dashboard.LinkEntry, error)
	CreateLink(ctx context.Context, p dashboard.LinkPatch) (dashboard.LinkEntry, error)
	UpdateLink(ctx context.Context, id string, p dashboard.LinkPatch) (dashboard.LinkEntry, error)
	DeleteLink(ctx context.Context, id string) error
	DailyData(ctx context.Context) (dashboard.DailyData, error)
	UpdateDailyData(ctx context.Context, p dashboard.DailyDataPatch) (dashboard.DailyData, error)
}

// Handler serves the dashboard and admin link/daily-data routes.
type Handler struct {
	svc Service
	log *slog.Logger
}

func New(svc Service) *Handler {
	return &Handler{svc: svc, log: logger.With("dashboard-handler")}
}

// Register mounts the public dashboard route and the admin routes behind gate.
func (h *Handler) Register(r gin.IRouter, gate gin.HandlerFunc) {
	r.GET("/api/dashboard", h.getDashboard)

	admin := r.Group("/api", gate)
	admin.GET("/links", h.listLinks)
	admin.POST("/links", h.createLink)
	admin.PUT("/links/:id", h.updateLink)
	admin.DELETE("/links/:id", h.deleteLink)
	admin.GET("/daily-data", h.getDailyData)
	admin.PUT("/daily-data", h.updateDailyData)
}

// writeError maps err onto its status and a {"message"} body.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := apperr.HTTPStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"message": apperr.Message(err)})
}

func (h *Handler) bindJSON(c *gin.Context, v interface{}) bool {
	return h.bind(c, v, false)
}

// bindOptionalJSON is bindJSON that treats a missing body as an empty one,
// leaving v at its zero value.
func (h *Handler) bindOptionalJSON(c *gin.Context, v interface{}) bool {
	return h.bind(c, v, true)
}

func (h *Handler) bind(c *gin.Context, v interface{}, optional bool) bool {
	err := c.ShouldBindJSON(v)
	if optional && errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		h.log.Debug("invalid request body", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return false
	}
	return true
}

func (h *Handler) getDashboard(c *gin.Context) {
	v, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) listLinks(c *gin.Context) {
	links, err := h.svc.ListLinks(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) createLink(c *gin.Context) {
	var p dashboard.LinkPatch
	if !h.bindJSON(c, &p) {
		return
	}
	l, err := h.svc.CreateLink(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *Handler) updateLink(c *gin.Context) {
	var p dashboard.LinkPatch
	if !h.bindOptionalJSON(c, &p) {
		return
	}
	l, err := h.svc.UpdateLink(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) deleteLink(c *gin.Context) {
	if err := h.svc.DeleteLink(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

func (h *Handler) getDailyData(c *gin.Context) {
	dd, err := h.svc.DailyData(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dd)
}

func (h *Handler) updateDailyData(c *gin.Context) {
	var p dashboard.DailyDataPatch
	if !h.bindOptionalJSON(c, &p) {
		return
	}
	dd, err := h.svc.UpdateDailyData(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dd)
}
