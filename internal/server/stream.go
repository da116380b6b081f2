package server

import (
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/san-kum/sortviz/internal/sorting"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is one message pushed to a stream client.
type Event struct {
	Type  string        `json:"type"`
	State string        `json:"state"`
	Frame sorting.Frame `json:"frame"`
}

// handleStream pushes the latest frame whenever it changes, at most once per
// frame interval. Clients never send anything meaningful; reads only detect
// the close.
func (s *Server) handleStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	s.mu.Lock()
	s.clients++
	n := s.clients
	s.mu.Unlock()
	log.Printf("stream client %s connected (%d open)", id, n)

	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
		log.Printf("stream client %s disconnected", id)
	}()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("stream client %s: %v", id, err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(s.opts.FrameInterval)
	defer ticker.Stop()

	var last Event
	sent := false
	for {
		select {
		case <-closed:
			return
		case <-s.ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case <-ticker.C:
		}

		ev := Event{Type: "frame", State: s.ctrl.State().String(), Frame: s.ctrl.Frame()}
		if sent && sameEvent(last, ev) {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("stream client %s write: %v", id, err)
			return
		}
		last, sent = ev, true
	}
}

func sameEvent(a, b Event) bool {
	return a.State == b.State &&
		a.Frame.Token == b.Frame.Token &&
		a.Frame.Step == b.Frame.Step &&
		slices.Equal(a.Frame.Values, b.Frame.Values)
}
