package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/alnah/marrow"
	"github.com/alnah/marrow/internal/ipc"
	"github.com/alnah/marrow/internal/settings"
)

// resizeData is the payload of a resize frame.
type resizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// handleSocket reads the IPC messages of one view, one at a time. The view is
// dropped when the socket closes.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("view")
	view, ok := s.views.get(id)
	if !ok {
		jsonError(w, "unknown view", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "view", id, "error", err)
		return
	}
	defer conn.Close()
	defer s.views.remove(id)

	s.log.Debug("view connected", "view", id, "path", view.Path)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("websocket read failed", "view", id, "error", err)
			}
			return
		}
		if !s.dispatch(conn, id, view, ipc.Parse(string(data))) {
			return
		}
	}
}

// dispatch handles one message and reports whether the socket stays open.
func (s *Server) dispatch(conn *websocket.Conn, id string, view *marrow.View, msg ipc.Message) bool {
	s.log.Debug("ipc message", "view", id, "kind", msg.Kind.String())

	switch msg.Kind {
	case ipc.KindOutputLines:
		lines, ok := view.Reveal(msg.Key, msg.Amount)
		if !ok {
			return true
		}
		return s.send(conn, id, ipc.Envelope{Type: ipc.FrameOutputLines, Data: lines})

	case ipc.KindResize:
		return s.send(conn, id, ipc.Envelope{
			Type: ipc.FrameResize,
			Data: resizeData{Width: msg.Width, Height: msg.Height},
		})

	case ipc.KindClipboard:
		if err := s.clip.WriteAll(msg.Text); err != nil {
			s.log.Warn("clipboard write failed", "error", err)
		}

	case ipc.KindSaveSettings:
		v, err := settings.Decode(msg.Settings)
		if err != nil {
			s.log.Warn("ignoring settings", "ext", msg.Ext, "error", err)
			return true
		}
		if err := s.viewer.Settings().Set(msg.Ext, v); err != nil {
			s.log.Warn("saving settings failed", "ext", msg.Ext, "error", err)
		}

	case ipc.KindCloseWindow:
		s.send(conn, id, ipc.Envelope{Type: ipc.FrameClose})
		return false

	case ipc.KindQuitApp:
		s.send(conn, id, ipc.Envelope{Type: ipc.FrameClose})
		s.quit()
		return false
	}
	return true
}

func (s *Server) send(conn *websocket.Conn, id string, frame ipc.Envelope) bool {
	if err := conn.WriteJSON(frame); err != nil {
		s.log.Warn("websocket write failed", "view", id, "error", err)
		return false
	}
	return true
}
