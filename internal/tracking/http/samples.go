package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

func (h *Handler) sampleIntent(c *gin.Context, fn func(v *views.SampleView) error) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var snap views.SampleViewSnapshot
	if err := h.onUI(c, s, func() error {
		v := s.Navigator.Samples()
		if err := fn(v); err != nil {
			return err
		}
		snap = v.Snapshot()
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "samples": snap})
}

func (h *Handler) getSamples(c *gin.Context) {
	h.sampleIntent(c, func(*views.SampleView) error { return nil })
}

func (h *Handler) searchSamples(c *gin.Context) {
	var req textReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errInvalidBody)
		return
	}
	h.sampleIntent(c, func(v *views.SampleView) error {
		v.SetSearchText(req.Text)
		return nil
	})
}

func (h *Handler) filterSampleStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errInvalidBody)
		return
	}
	h.sampleIntent(c, func(v *views.SampleView) error {
		return v.SelectStatus(req.Status)
	})
}

func (h *Handler) backToProjects(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var (
		navigated bool
		resp      sessionResponse
	)
	if err := h.onUI(c, s, func() error {
		navigated = s.Navigator.Samples().ClickBack()
		resp = describe(s)
		return nil
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "navigated": navigated, "session": resp})
}
