package application

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Registry is the orchestrator owning the controller set for the process
// lifetime. Every controller registers itself at construction time and
// signals when its asynchronous setup (typically the persisted-state load)
// has completed. Once every registered controller has signalled and the
// registry has been sealed, the barrier opens and controllers may be
// dereferenced by their siblings.
//
// Sealing separates construction from readiness: the caller constructs
// every controller first, then seals, guaranteeing the pending set is fully
// populated before the barrier can open.
type Registry struct {
	mtx     sync.Mutex
	pending map[string]struct{}
	sealed  bool
	ready   chan struct{}

	account     *AccountService
	network     *NetworkService
	external    *ExternalService
	transaction *TransactionService
	inpage      *InpageAccountService
	onInstall   *OnInstallService
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		pending: make(map[string]struct{}),
		ready:   make(chan struct{}),
	}
}

// RegisterController adds a controller to the pending set. It must be called
// before the controller starts any asynchronous setup.
func (r *Registry) RegisterController(name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.pending[name] = struct{}{}
	log.Debugf("registry: controller %s registered", name)
}

// ControllerInitialized removes a controller from the pending set, opening
// the barrier if it was the last one and the registry is sealed.
func (r *Registry) ControllerInitialized(name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.pending, name)
	log.Debugf("registry: controller %s initialized", name)
	r.maybeOpen()
}

// Seal marks the controller set as complete. No controller may register
// after sealing.
func (r *Registry) Seal() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.sealed = true
	r.maybeOpen()
}

// WaitReady blocks until every registered controller has initialized or the
// context expires.
func (r *Registry) WaitReady(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// maybeOpen must be called with the lock held.
func (r *Registry) maybeOpen() {
	if r.sealed && len(r.pending) == 0 {
		select {
		case <-r.ready:
		default:
			close(r.ready)
			log.Debug("registry: all controllers initialized")
		}
	}
}

// Sibling accessors. They block until the barrier opens so that no
// controller can dereference a sibling whose own setup is still in flight.

// Account returns the account controller.
func (r *Registry) Account() *AccountService {
	<-r.ready
	return r.account
}

// Network returns the network controller.
func (r *Registry) Network() *NetworkService {
	<-r.ready
	return r.network
}

// External returns the external price controller.
func (r *Registry) External() *ExternalService {
	<-r.ready
	return r.external
}

// Transaction returns the transaction controller.
func (r *Registry) Transaction() *TransactionService {
	<-r.ready
	return r.transaction
}

// InpageAccount returns the inpage account controller.
func (r *Registry) InpageAccount() *InpageAccountService {
	<-r.ready
	return r.inpage
}

// OnInstall returns the on-install controller.
func (r *Registry) OnInstall() *OnInstallService {
	<-r.ready
	return r.onInstall
}
