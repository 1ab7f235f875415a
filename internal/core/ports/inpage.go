package ports

import "github.com/eureka-network/eurekalite-daemon/pkg/bus"

// PortNameContentScript is the reserved channel name identifying legitimate
// content-script connections. Connections declaring any other name are
// ignored entirely, not rejected with an error.
const PortNameContentScript = "eurekalite-contentscript"

// InpagePort is one long-lived bidirectional channel to a page context.
type InpagePort interface {
	// ID uniquely identifies the port for the lifetime of its connection.
	ID() string
	// Name is the channel name declared by the connecting context.
	Name() string
	// Send unicasts a message to the page context.
	Send(msg bus.Message) error
}

// Tab is an open page context reachable for one-shot notifications outside
// the port protocol.
type Tab interface {
	// URL is the address of the page, empty for privileged contexts that
	// cannot be scripted.
	URL() string
	// Notify delivers a one-shot message to the page.
	Notify(msg bus.Message) error
}

// TabManager enumerates every open page context known to the transport.
type TabManager interface {
	ListTabs() []Tab
}
