package search

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	MsgInput = "input"
	MsgClear = "clear"
	MsgState = "search.state"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage is one keystroke state sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type StateMessage struct {
	Type string `json:"type"`
	Snapshot
}

// WSHandler runs one Session per websocket connection. The session is
// closed when the client disconnects.
func WSHandler(searcher Searcher, quiet time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		// OnChange calls are serialized, so this is the only writer.
		sess := NewSession(searcher, Options{
			Quiet: quiet,
			Log:   log,
			OnChange: func(s Snapshot) {
				_ = ws.SetWriteDeadline(time.Now().Add(2 * time.Second))
				_ = ws.WriteJSON(StateMessage{Type: MsgState, Snapshot: s})
			},
		})
		defer sess.Close()

		log.Info().Str("session", sess.ID()).Str("remote", c.ClientIP()).Msg("search session opened")

		for {
			var msg ClientMessage
			if err := ws.ReadJSON(&msg); err != nil {
				break
			}
			switch msg.Type {
			case MsgInput:
				sess.Input(msg.Text)
			case MsgClear:
				sess.Clear()
			default:
				log.Debug().Str("type", msg.Type).Msg("unknown search message")
			}
		}

		log.Info().Str("session", sess.ID()).Msg("search session closed")
	}
}
