package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/session"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

// projectIntent runs fn against the project view and answers with the
// resulting view snapshot.
func (h *Handler) projectIntent(c *gin.Context, fn func(v *views.ProjectView) error) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var snap views.ProjectViewSnapshot
	if err := h.onUI(c, s, func() error {
		v := s.Navigator.Projects()
		if err := fn(v); err != nil {
			return err
		}
		snap = v.Snapshot()
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": snap})
}

func (h *Handler) getProjects(c *gin.Context) {
	h.projectIntent(c, func(*views.ProjectView) error { return nil })
}

func (h *Handler) searchProjects(c *gin.Context) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errInvalidBody)
		return
	}
	h.projectIntent(c, func(v *views.ProjectView) error {
		v.SetSearchText(req.Text)
		return nil
	})
}

func (h *Handler) sortProjects(c *gin.Context) {
	var req sortReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errInvalidBody)
		return
	}
	h.projectIntent(c, func(v *views.ProjectView) error {
		return v.SelectSortOrder(req.Order)
	})
}

func (h *Handler) selectProject(c *gin.Context) {
	var req selectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errInvalidBody)
		return
	}
	h.projectIntent(c, func(v *views.ProjectView) error {
		return v.SelectProject(req.Code)
	})
}

func (h *Handler) setSubscription(c *gin.Context) {
	var req subscriptionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Subscribed == nil {
		h.fail(c, errInvalidBody)
		return
	}
	code := c.Param("code")
	ctx := c.Request.Context()
	h.projectIntent(c, func(v *views.ProjectView) error {
		return v.SetSubscribed(ctx, code, *req.Subscribed)
	})
}

func (h *Handler) reloadProjects(c *gin.Context) {
	h.projectIntent(c, func(v *views.ProjectView) error { return v.Reload() })
}

func (h *Handler) viewSamples(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var (
		navigated bool
		resp      sessionResponse
	)
	if err := h.onUI(c, s, func() error {
		if _, selected := s.Navigator.Projects().Grid().SelectedItem(); !selected {
			return views.ErrNoProjectSelected
		}
		navigated = s.Navigator.Projects().ClickViewSamples()
		resp = describe(s)
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "navigated": navigated, "session": resp})
}

func (h *Handler) downloadManifest(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var (
		name string
		rc   io.ReadCloser
	)
	ctx := c.Request.Context()
	if err := h.onUI(c, s, func() error {
		var err error
		name, rc, err = s.Navigator.Projects().Download(ctx)
		return err
	}); err != nil {
		h.fail(c, err)
		return
	}
	h.streamManifest(c, s, name, rc)
}

func (h *Handler) streamManifest(c *gin.Context, s *session.Session, name string, rc io.ReadCloser) {
	defer rc.Close()

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Status(http.StatusOK)

	n, err := io.Copy(c.Writer, rc)
	if err != nil {
		h.logger.Error("stream manifest",
			"session", s.ID,
			"file", name,
			"bytes", n,
			"error", err,
		)
		c.Abort()
	}
}
