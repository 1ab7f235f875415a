package application

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

const inpageControllerName = "inpageAccount"

// InpageAccount is the point-in-time account snapshot sent to page
// contexts.
type InpageAccount struct {
	LoggedIn bool   `json:"loggedIn"`
	Name     string `json:"name,omitempty"`
	Network  string `json:"network,omitempty"`
	Address  string `json:"address,omitempty"`
	Balance  string `json:"balance,omitempty"`
}

// InpageAccountWrapper carries either a snapshot or a snapshot-construction
// error, tagged with the reason the recipient is being notified.
type InpageAccountWrapper struct {
	Account            *InpageAccount      `json:"account"`
	Error              string              `json:"error,omitempty"`
	StatusChangeReason AccountChangeReason `json:"statusChangeReason,omitempty"`
}

// InpageAccountService maintains the set of live long-lived ports to page
// contexts and fans account-state snapshots out to them. It is the only
// component mutating the port set.
type InpageAccountService struct {
	registry *Registry

	lock  sync.RWMutex
	ports []ports.InpagePort
}

// InpageAccountServiceOpts defines the dependencies needed to create an
// InpageAccountService with NewInpageAccountService.
type InpageAccountServiceOpts struct {
	Registry *Registry
}

// NewInpageAccountService registers the inpage account controller. It has
// no asynchronous setup and initializes immediately.
func NewInpageAccountService(opts InpageAccountServiceOpts) *InpageAccountService {
	svc := &InpageAccountService{
		registry: opts.Registry,
		ports:    make([]ports.InpagePort, 0),
	}

	opts.Registry.RegisterController(inpageControllerName)
	opts.Registry.inpage = svc
	opts.Registry.ControllerInitialized(inpageControllerName)

	return svc
}

// HandleConnection registers a new inbound port. A connection declaring any
// name other than the content-script identity is ignored entirely; that is
// not an error.
func (i *InpageAccountService) HandleConnection(port ports.InpagePort) {
	if port.Name() != ports.PortNameContentScript {
		return
	}

	i.lock.Lock()
	defer i.lock.Unlock()
	i.ports = append(i.ports, port)
	log.Debugf("inpage: port %s connected", port.ID())
}

// HandleDisconnect removes a port from the live set. Removing a port that
// is already absent is a silent no-op, protecting against double-disconnect
// races.
func (i *InpageAccountService) HandleDisconnect(port ports.InpagePort) {
	i.lock.Lock()
	defer i.lock.Unlock()
	for idx, p := range i.ports {
		if p.ID() == port.ID() {
			i.ports = append(i.ports[:idx], i.ports[idx+1:]...)
			log.Debugf("inpage: port %s disconnected", port.ID())
			return
		}
	}
}

// HandleMessage serves a port's explicit request for the current account
// state with an immediate unicast.
func (i *InpageAccountService) HandleMessage(
	port ports.InpagePort, msg bus.Message,
) {
	if port.Name() != ports.PortNameContentScript {
		return
	}
	if msg.Type == bus.GetInpageAccountValues {
		i.sendInpageAccount(port, ReasonDappConnection)
	}
}

// BroadcastAccount fans the current account snapshot out to every live
// port, tagged with the reason for the notification.
func (i *InpageAccountService) BroadcastAccount(reason AccountChangeReason) {
	i.lock.RLock()
	livePorts := make([]ports.InpagePort, len(i.ports))
	copy(livePorts, i.ports)
	i.lock.RUnlock()

	for _, port := range livePorts {
		i.sendInpageAccount(port, reason)
	}
}

// PortCount returns the number of live ports.
func (i *InpageAccountService) PortCount() int {
	i.lock.RLock()
	defer i.lock.RUnlock()
	return len(i.ports)
}

func (i *InpageAccountService) sendInpageAccount(
	port ports.InpagePort, reason AccountChangeReason,
) {
	wrapper := i.inpageAccountWrapper(reason)
	msg := bus.MustNewMessage(bus.SendInpageAccountValues, wrapper)
	if err := port.Send(msg); err != nil {
		log.WithError(err).Warnf("inpage: send to port %s failed", port.ID())
	}
}

// inpageAccountWrapper builds the snapshot for the current session state.
// A logged-in session whose wallet has not completed a single successful
// info fetch cannot be serialized; that state is modeled as an explicit
// error object rather than a crash.
func (i *InpageAccountService) inpageAccountWrapper(
	reason AccountChangeReason,
) InpageAccountWrapper {
	inpageAccount := &InpageAccount{}

	account := i.registry.Account().LoggedInAccount()
	if account != nil {
		inpageAccount.LoggedIn = true
		inpageAccount.Name = account.Name
		inpageAccount.Network = i.registry.Network().Name()

		// The session wallet is always present alongside the logged-in
		// account, but its info may be missing if every fetch failed so far.
		wallet := i.registry.Account().SessionWallet()
		if wallet == nil || wallet.Info() == nil {
			return InpageAccountWrapper{
				Error: "unexpected error, user is logged in but wallet info is not defined",
			}
		}
		inpageAccount.Address = wallet.Info().AddrStr
		inpageAccount.Balance = wallet.Info().Balance.String()
	}

	return InpageAccountWrapper{
		Account:            inpageAccount,
		StatusChangeReason: reason,
	}
}
