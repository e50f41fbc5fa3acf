package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/auth"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/grid"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/session"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/ui"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

var errInvalidBody = errors.New("invalid body")

const (
	defaultWidth  = 1280
	defaultHeight = 800
)

// Handler exposes the dashboard sessions over HTTP. Every view intent runs on
// the UI thread of its session.
type Handler struct {
	sessions *session.Registry
	logger   *slog.Logger
	timeout  time.Duration
}

func New(sessions *session.Registry, logger *slog.Logger, timeout time.Duration) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{sessions: sessions, logger: logger, timeout: timeout}
}

// Register attaches session routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.createSession)
	rg.GET("/:sid", h.getSession)
	rg.DELETE("/:sid", h.closeSession)
	rg.PUT("/:sid/viewport", h.resize)

	p := rg.Group("/:sid/projects")
	p.GET("", h.getProjects)
	p.PUT("/search", h.searchProjects)
	p.PUT("/sort", h.sortProjects)
	p.PUT("/selection", h.selectProject)
	p.PUT("/:code/subscription", h.setSubscription)
	p.POST("/reload", h.reloadProjects)
	p.POST("/view-samples", h.viewSamples)
	p.GET("/manifest", h.downloadManifest)

	s := rg.Group("/:sid/samples")
	s.GET("", h.getSamples)
	s.PUT("/search", h.searchSamples)
	s.PUT("/status", h.filterSampleStatus)
	s.POST("/back", h.backToProjects)
}

// session resolves :sid for the calling user and writes the error response
// when it cannot.
func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("sid"), auth.UserFirebaseUID(c))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return s, true
}

// Intent states shared by onUI and the queued task.
const (
	intentPending int32 = iota
	intentRunning
	intentAbandoned
)

// onUI runs fn on the session's UI thread, bounded by the request context and
// the handler timeout. An intent still queued when the deadline passes is
// dropped and never runs, so a timeout response means nothing changed. One
// that already started is waited for and its result returned.
func (h *Handler) onUI(c *gin.Context, s *session.Session, fn func() error) error {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		state atomic.Int32
		done  = make(chan struct{})
		err   error
	)
	aerr := s.UI.AccessSync(ctx, func() {
		if !state.CompareAndSwap(intentPending, intentRunning) {
			return
		}
		defer close(done)
		err = fn()
	})
	if aerr == nil {
		return err
	}
	if state.CompareAndSwap(intentPending, intentAbandoned) {
		return aerr
	}
	<-done
	return err
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, grid.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidBody),
		errors.Is(err, session.ErrInvalidUser),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, ui.ErrUnknownItem),
		errors.Is(err, grid.ErrUnknownColumn),
		errors.Is(err, grid.ErrColumnNotSortable):
		return http.StatusBadRequest
	case errors.Is(err, views.ErrNotAttached),
		errors.Is(err, views.ErrSubscriptionsReadOnly),
		errors.Is(err, views.ErrNoProjectSelected),
		errors.Is(err, grid.ErrSelectionDisabled),
		errors.Is(err, ui.ErrNothingToDownload),
		errors.Is(err, ui.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
