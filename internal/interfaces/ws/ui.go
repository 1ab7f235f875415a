package wsinterface

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

type uiConn struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func (s *Service) handleUI(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("ws: ui upgrade failed")
		return
	}

	c := &uiConn{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}

	s.lock.Lock()
	s.uiConns[c.id] = c
	s.lock.Unlock()
	uiClients.Inc()
	log.Debugf("ws: ui client %s connected", c.id)

	go c.writeLoop()
	s.uiReadLoop(r, c)

	s.lock.Lock()
	delete(s.uiConns, c.id)
	s.lock.Unlock()
	uiClients.Dec()
	close(c.send)
	log.Debugf("ws: ui client %s disconnected", c.id)
}

// uiReadLoop consumes the popup protocol until the connection drops. Every
// inbound message goes through the dispatcher; handler errors are reported
// back to all popup clients so whichever one is visible can display them.
func (s *Service) uiReadLoop(r *http.Request, c *uiConn) {
	for {
		_, buf, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		msg := bus.Message{}
		if err := json.Unmarshal(buf, &msg); err != nil {
			log.WithError(err).Debug("ws: dropping malformed ui message")
			continue
		}

		messagesDispatched.WithLabelValues(string(msg.Type)).Inc()
		res, err := s.dispatcher.Dispatch(r.Context(), msg)
		if err != nil {
			dispatchErrors.Inc()
			log.WithError(err).Warnf("ws: handler for %s failed", msg.Type)
			s.Broadcast(bus.MustNewMessage(
				bus.UnexpectedError, map[string]string{"error": err.Error()},
			))
			continue
		}
		if res == nil {
			continue
		}

		out, err := json.Marshal(res)
		if err != nil {
			log.WithError(err).Errorf("ws: failed to serialize %s response", msg.Type)
			continue
		}
		select {
		case c.send <- out:
		default:
			log.Warnf("ws: ui client %s queue full, dropping response", c.id)
		}
	}
}

func (c *uiConn) writeLoop() {
	for buf := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
			c.conn.Close()
			return
		}
	}
	c.conn.Close()
}
