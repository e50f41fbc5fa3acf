package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/auth"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/session"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

func (h *Handler) createSession(c *gin.Context) {
	req := viewportReq{Width: defaultWidth, Height: defaultHeight}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil || req.Width < 0 || req.Height < 0 {
			h.fail(c, errInvalidBody)
			return
		}
	}

	s, err := h.sessions.Create(c.Request.Context(), auth.UserFirebaseUID(c), req.Width, req.Height)
	if err != nil {
		h.fail(c, err)
		return
	}

	var resp sessionResponse
	if err := h.onUI(c, s, func() error {
		resp = describe(s)
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": resp})
}

func (h *Handler) getSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var resp sessionResponse
	if err := h.onUI(c, s, func() error {
		resp = describe(s)
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": resp})
}

func (h *Handler) closeSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("sid"), auth.UserFirebaseUID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) resize(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req viewportReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Width <= 0 || req.Height <= 0 {
		h.fail(c, errInvalidBody)
		return
	}

	var resp sessionResponse
	if err := h.onUI(c, s, func() error {
		s.UI.Page().Resize(req.Width, req.Height)
		resp = describe(s)
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": resp})
}

// describe snapshots the view currently shown. Call it on the UI thread.
func describe(s *session.Session) sessionResponse {
	nav := s.Navigator
	resp := sessionResponse{ID: s.ID, View: nav.Current()}
	switch nav.Current() {
	case views.ViewProjects:
		snap := nav.Projects().Snapshot()
		resp.Projects = &snap
	case views.ViewSamples:
		snap := nav.Samples().Snapshot()
		resp.Samples = &snap
	}
	return resp
}
