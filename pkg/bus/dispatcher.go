package bus

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handler processes one inbound message and optionally returns a response
// payload to be sent back to the requester. A nil response with a nil error
// means the message was fire-and-forget.
type Handler func(ctx context.Context, payload json.RawMessage) (interface{}, error)

// Dispatcher routes inbound messages to the handler registered for their
// type. Unknown types are dropped silently, they may belong to clients
// speaking a newer protocol revision.
type Dispatcher interface {
	RegisterHandler(mtype MessageType, handler Handler)
	Dispatch(ctx context.Context, msg Message) (*Message, error)
}

type dispatcher struct {
	lock     sync.RWMutex
	handlers map[MessageType]Handler
}

// NewDispatcher returns an empty dispatcher ready for handler registration.
func NewDispatcher() Dispatcher {
	return &dispatcher{
		handlers: make(map[MessageType]Handler),
	}
}

func (d *dispatcher) RegisterHandler(mtype MessageType, handler Handler) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.handlers[mtype] = handler
}

// Dispatch runs the handler registered for the message type. The returned
// message, if any, carries the request id so the transport can correlate it.
func (d *dispatcher) Dispatch(ctx context.Context, msg Message) (*Message, error) {
	d.lock.RLock()
	handler, ok := d.handlers[msg.Type]
	d.lock.RUnlock()
	if !ok {
		log.Debugf("bus: no handler for message type %s, dropped", msg.Type)
		return nil, nil
	}

	res, err := handler(ctx, msg.Payload)
	if err != nil {
		return nil, err
	}
	// Only correlated requests get a response; everything else is
	// fire-and-forget and answered, if at all, by broadcasts.
	if len(msg.ID) <= 0 {
		return nil, nil
	}

	buf, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msg.Type, ID: msg.ID, Payload: buf}, nil
}
