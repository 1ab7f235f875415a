package ports

import "github.com/eureka-network/eurekalite-daemon/pkg/bus"

// Broadcaster fans a message out to every connected popup UI client.
// Delivery to a single client is in send order, no ordering is guaranteed
// across senders.
type Broadcaster interface {
	Broadcast(msg bus.Message)
}
