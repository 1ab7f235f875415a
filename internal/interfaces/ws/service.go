package wsinterface

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/internal/core/application"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/internal/interfaces"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

var _ interfaces.Service = (*Service)(nil)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	// sendQueueSize bounds the per-connection outbound queue. A client that
	// stops draining its queue gets disconnected rather than blocking the
	// broadcast path.
	sendQueueSize = 64
)

// ServiceOpts defines the dependencies needed to create a websocket service
// with NewService.
type ServiceOpts struct {
	// Address the server listens on, host:port.
	Address string
	// Dispatcher routes messages received on the popup endpoint.
	Dispatcher bus.Dispatcher
	// Inpage receives the lifecycle and messages of page context ports.
	Inpage *application.InpageAccountService
}

// Service is the websocket transport of the daemon. It serves the popup UI
// protocol on /ui, the page context port protocol on /inpage and prometheus
// metrics on /metrics. It is the concrete Broadcaster and TabManager wired
// into the application layer.
type Service struct {
	address    string
	dispatcher bus.Dispatcher
	inpage     *application.InpageAccountService
	upgrader   websocket.Upgrader
	server     *http.Server

	lock        sync.RWMutex
	uiConns     map[string]*uiConn
	inpageConns map[string]*inpageConn
}

// NewService returns an unstarted websocket service.
func NewService(opts ServiceOpts) *Service {
	svc := &Service{
		address:    opts.Address,
		dispatcher: opts.Dispatcher,
		inpage:     opts.Inpage,
		upgrader: websocket.Upgrader{
			// Popup and content scripts connect from extension origins,
			// origin checks happen out of band.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		uiConns:     make(map[string]*uiConn),
		inpageConns: make(map[string]*inpageConn),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ui", svc.handleUI)
	mux.HandleFunc("/inpage", svc.handleInpage)
	mux.Handle("/metrics", promhttp.Handler())
	svc.server = &http.Server{Handler: mux}

	return svc
}

// Start begins accepting connections. It returns once the listener is bound,
// serving continues in background.
func (s *Service) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("ws: server exited")
		}
	}()

	log.Infof("ws interface listening on %s", s.address)
	return nil
}

// Stop gracefully shuts the server down, closing every live connection.
func (s *Service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// nolint:errcheck
	s.server.Shutdown(ctx)
	log.Debug("ws interface stopped")
}

// Broadcast fans a message out to every connected popup client. Clients
// with a saturated queue are skipped, they are about to be disconnected.
func (s *Service) Broadcast(msg bus.Message) {
	buf, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Error("ws: failed to serialize broadcast")
		return
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, c := range s.uiConns {
		select {
		case c.send <- buf:
		default:
		}
	}
	broadcastsSent.Inc()
}

// ListTabs returns every live page context as a notifiable tab, including
// connections whose port protocol is being ignored.
func (s *Service) ListTabs() []ports.Tab {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tabs := make([]ports.Tab, 0, len(s.inpageConns))
	for _, c := range s.inpageConns {
		tabs = append(tabs, c)
	}
	return tabs
}
