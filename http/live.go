package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/session"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096

	// closeCredentialRequired tells the page to reload into the gate.
	closeCredentialRequired = 4001
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// clientEvent is a message sent by the page.
type clientEvent struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
	ID    string `json:"id,omitempty"`
}

// renderMessage carries the rendered live regions to the page.
type renderMessage struct {
	Type        string `json:"type"`
	Query       string `json:"query"`
	QueryClears uint64 `json:"queryClears"`
	Loading     bool   `json:"loading"`
	CanExport   bool   `json:"canExport"`
	Suggestions string `json:"suggestions"`
	Places      string `json:"places"`
	Toasts      string `json:"toasts"`
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	if s.container.Credential() == "" {
		msg := websocket.FormatCloseMessage(closeCredentialRequired, "credential required")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id)
	logger.Info("session opened")
	if s.cfg.Sessions != nil {
		s.cfg.Sessions.Inc()
		defer s.cfg.Sessions.Dec()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	dirty := make(chan struct{}, 1)
	markDirty := func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}
	sess := session.New(ctx, s.container, session.Config{
		DebounceDelay: s.cfg.DebounceDelay,
		ToastTTL:      s.cfg.ToastTTL,
		OnChange:      markDirty,
		Logger:        logger,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.pushViews(ctx, conn, sess, dirty)
	}()
	markDirty()

	// Shutting the server down unblocks the read loop.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	conn.SetReadLimit(maxMessageSize)
	for {
		var ev clientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("session read failed", "err", err)
			}
			break
		}
		s.dispatch(sess, ev, logger)
	}

	cancel()
	sess.Close()
	<-done
	logger.Info("session closed")
}

func (s *Server) dispatch(sess *session.Session, ev clientEvent, logger *slog.Logger) {
	switch ev.Type {
	case "input":
		sess.Input(ev.Query)
	case "save":
		sess.Save(ev.ID)
	case "delete":
		sess.Delete(ev.ID)
	case "refresh":
		sess.Refresh(ev.ID)
	default:
		logger.Warn("unknown session event", "type", ev.Type)
	}
}

// pushViews writes the session view every time it is marked dirty, at most
// once per render interval.
func (s *Server) pushViews(ctx context.Context, conn *websocket.Conn, sess *session.Session, dirty <-chan struct{}) {
	limiter := newRenderLimiter(s.cfg.RenderInterval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-dirty:
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		msg, err := s.fragments(sess.View())
		if err != nil {
			s.logger.Error("render session view", "code", placefinder.EINTERNAL, "err", err)
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("session write failed", "err", err)
			_ = conn.Close()
			return
		}
	}
}
