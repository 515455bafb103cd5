package http

import (
	"net/http"

	"access-analytics/internal/events"
	"access-analytics/internal/hubs"
	"access-analytics/internal/shared/loggers"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type liveHandler struct {
	hub *hubs.Hub
}

func NewLiveHandler(hub *hubs.Hub) http.Handler {
	return &liveHandler{hub: hub}
}

// ServeHTTP upgrades GET /live to a WebSocket and streams hub notifications
// to the client. The topic defaults to stats updates; alerts are opt-in via
// ?topic=alert. Delivery inherits the hub's guarantees: per-connection FIFO,
// drop-oldest under overflow, forced disconnect for a persistently slow
// client (which should reconnect and re-read current stats over HTTP).
func (h *liveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = events.TopicStatsUpdate
	}

	sub, err := h.hub.Subscribe(topic)
	if err != nil {
		writeErrorResponse(w, r, errInvalidTopic(topic))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		h.hub.Unsubscribe(sub)
		loggers.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	metricLiveConnectionsTotal.Inc()

	logger := loggers.Ctx(r.Context())
	logger.Debug().
		Str(loggers.FieldTopic, topic).
		Str(loggers.FieldSubscriberID, sub.ID).
		Msg("live subscriber connected")

	// Read pump: the client sends nothing meaningful, but reading is how
	// a disconnect is detected. Unsubscribing closes the delivery channel,
	// which ends the write pump.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.hub.Unsubscribe(sub)
				return
			}
		}
	}()

	// Write pump: runs until the channel closes, either because the client
	// went away or because the hub force-unsubscribed a slow consumer.
	for notification := range sub.Receive() {
		if err := conn.WriteJSON(notification); err != nil {
			h.hub.Unsubscribe(sub)
			break
		}
	}

	_ = conn.Close()
	logger.Debug().
		Str(loggers.FieldSubscriberID, sub.ID).
		Msg("live subscriber disconnected")
}
