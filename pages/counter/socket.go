package counter

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/goliatone/go-uidemo/internal/logging"
)

// ClientMessage is sent by the page script.
type ClientMessage struct {
	Type string `json:"type"`
}

// ServerMessage carries the count after every accepted message.
type ServerMessage struct {
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// SocketHandler serves the counter websocket. The count starts from the
// count query parameter and lives only as long as the connection.
func SocketHandler(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	log = log.WithFields(map[string]any{"page": "counter"})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := ParseCount(r.URL.Query().Get(CountField))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Error(err, "websocket accept")
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		if err := wsjson.Write(ctx, conn, ServerMessage{Count: state.Count}); err != nil {
			return
		}

		for {
			var msg ClientMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				status := websocket.CloseStatus(err)
				if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
					log.Debug("websocket closed: " + err.Error())
				}
				return
			}

			reply := ServerMessage{}
			switch msg.Type {
			case "increment":
				state = state.Increment()
			default:
				reply.Error = "unknown message type: " + msg.Type
			}
			reply.Count = state.Count
			if err := wsjson.Write(ctx, conn, reply); err != nil {
				return
			}
		}
	})
}
