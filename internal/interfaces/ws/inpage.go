package wsinterface

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var errPortClosed = errors.New("port is closed")

// inpageConn is one connected page context. It is both the port the inpage
// protocol runs over and the tab reachable for one-shot notifications.
type inpageConn struct {
	id      string
	name    string
	pageURL string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
}

func (c *inpageConn) ID() string   { return c.id }
func (c *inpageConn) Name() string { return c.name }
func (c *inpageConn) URL() string  { return c.pageURL }

func (c *inpageConn) Send(msg bus.Message) error {
	buf, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case c.send <- buf:
		return nil
	case <-c.done:
		return errPortClosed
	}
}

func (c *inpageConn) Notify(msg bus.Message) error {
	return c.Send(msg)
}

// handleInpage serves the page context port protocol. The connecting script
// declares its channel name and page url as query parameters; connections
// with an unexpected name stay open but their messages are never acted upon.
func (s *Service) handleInpage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		pageURL = r.Header.Get("Origin")
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("ws: inpage upgrade failed")
		return
	}

	c := &inpageConn{
		id:      uuid.NewString(),
		name:    name,
		pageURL: pageURL,
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
	}

	s.lock.Lock()
	s.inpageConns[c.id] = c
	s.lock.Unlock()
	inpagePorts.Inc()

	s.inpage.HandleConnection(c)
	go c.writeLoop()

	for {
		_, buf, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		msg := bus.Message{}
		if err := json.Unmarshal(buf, &msg); err != nil {
			log.WithError(err).Debug("ws: dropping malformed inpage message")
			continue
		}
		s.inpage.HandleMessage(c, msg)
	}

	s.lock.Lock()
	delete(s.inpageConns, c.id)
	s.lock.Unlock()
	inpagePorts.Dec()

	s.inpage.HandleDisconnect(c)
	// The send channel is never closed, the application layer may hold a
	// snapshot of this port and call Send after the disconnect. The done
	// channel makes those calls fail fast instead.
	close(c.done)
}

func (c *inpageConn) writeLoop() {
	defer c.conn.Close()
	for {
		select {
		case buf := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
