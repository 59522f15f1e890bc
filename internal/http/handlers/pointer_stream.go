package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"imagestudio/internal/domain"
	"imagestudio/internal/editor"
)

const (
	pointerReadLimit = 4096
	pointerPongWait  = 60 * time.Second
)

type pointerReply struct {
	Mask  *editor.MaskSnapshot `json:"mask,omitempty"`
	Error string               `json:"error,omitempty"`
}

func (a *App) upgrader() *websocket.Upgrader {
	allowed := make(map[string]struct{}, len(a.Config.CORSAllowedOrigins))
	for _, o := range a.Config.CORSAllowedOrigins {
		allowed[o] = struct{}{}
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[origin]
			_, wildcard := allowed["*"]
			return ok || wildcard
		},
	}
}

// PointerStream is the websocket form of Pointer: every inbound event is
// applied in order and answered with the recorder snapshot.
func (a *App) PointerStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := a.Sessions.Snapshot(id); err != nil {
		a.fail(w, r, err)
		return
	}

	conn, err := a.upgrader().Upgrade(w, r, nil)
	if err != nil {
		a.Logger.Warn().Err(err).Str("session_id", id).Msg("pointer stream upgrade")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(pointerReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pointerPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pointerPongWait))
	})

	writeWait := a.Config.HTTPWriteTimeout
	if writeWait <= 0 {
		writeWait = 10 * time.Second
	}

	log := a.Logger.With().Str("session_id", id).Logger()
	log.Debug().Msg("pointer stream opened")
	for {
		var ev editor.PointerEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("pointer stream read")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pointerPongWait))

		var reply pointerReply
		err := a.Sessions.Update(id, func(s *editor.Session) error {
			if err := s.ApplyPointer(ev); err != nil {
				return err
			}
			snap := s.Recorder().Snapshot()
			reply.Mask = &snap
			return nil
		})
		if err != nil {
			reply.Error = err.Error()
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if werr := conn.WriteJSON(reply); werr != nil {
			log.Warn().Err(werr).Msg("pointer stream write")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			// Session closed by expand or delete.
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
			return
		}
	}
}
