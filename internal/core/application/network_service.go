package application

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

const networkControllerName = "network"

// NetworkService holds the active network selection. The three profiles are
// fixed for the process lifetime and selected by index; the active profile
// determines which account partition and which explorer endpoint are live.
type NetworkService struct {
	registry       *Registry
	configRepo     domain.ConfigRepository
	broadcaster    ports.Broadcaster
	walletProvider ports.WalletFactoryProvider
	profiles       []domain.NetworkProfile

	lock         sync.RWMutex
	networkIndex int
}

// NetworkServiceOpts defines the dependencies needed to create a
// NetworkService with NewNetworkService.
type NetworkServiceOpts struct {
	Registry       *Registry
	ConfigRepo     domain.ConfigRepository
	Broadcaster    ports.Broadcaster
	Dispatcher     bus.Dispatcher
	WalletProvider ports.WalletFactoryProvider
	// Profiles are the fixed network profiles, indexed mainnet, testnet,
	// regtest.
	Profiles []domain.NetworkProfile
}

// NewNetworkService registers the network controller and asynchronously
// restores the persisted network selection.
func NewNetworkService(opts NetworkServiceOpts) *NetworkService {
	svc := &NetworkService{
		registry:       opts.Registry,
		configRepo:     opts.ConfigRepo,
		broadcaster:    opts.Broadcaster,
		walletProvider: opts.WalletProvider,
		profiles:       opts.Profiles,
	}

	opts.Registry.RegisterController(networkControllerName)
	opts.Registry.network = svc
	svc.registerHandlers(opts.Dispatcher)

	go func() {
		index, err := svc.configRepo.GetNetworkIndex(context.Background())
		if err != nil {
			log.WithError(err).Error("network: failed to restore index")
		}
		if index >= 0 && index < len(svc.profiles) {
			svc.lock.Lock()
			svc.networkIndex = index
			svc.lock.Unlock()
			svc.broadcaster.Broadcast(bus.MustNewMessage(
				bus.ChangeNetworkSuccess,
				networkIndexPayload{NetworkIndex: index},
			))
		}
		opts.Registry.ControllerInitialized(networkControllerName)
	}()

	return svc
}

// Index returns the active network index.
func (n *NetworkService) Index() int {
	n.lock.RLock()
	defer n.lock.RUnlock()
	return n.networkIndex
}

// Profile returns the active network profile.
func (n *NetworkService) Profile() domain.NetworkProfile {
	return n.profiles[n.Index()]
}

// Name returns the active network name.
func (n *NetworkService) Name() string {
	return n.Profile().Name
}

// ExplorerURL returns the block explorer base url of the active network.
func (n *NetworkService) ExplorerURL() string {
	return n.Profile().ExplorerURL
}

// IsMainnet reports whether the active network is mainnet.
func (n *NetworkService) IsMainnet() bool {
	return n.Index() == 0
}

// Factory returns the wallet factory bound to the active network profile.
func (n *NetworkService) Factory() ports.WalletFactory {
	return n.walletProvider.FactoryFor(n.Profile())
}

// Networks returns the fixed network profiles.
func (n *NetworkService) Networks() []domain.NetworkProfile {
	return n.profiles
}

// ChangeNetwork switches the active network. The switch is destructive:
// account partitions are keyed by network, so the logged-in identity is
// dropped first, then the new index is persisted and broadcast. Selecting
// the already-active index performs no logout and no write.
func (n *NetworkService) ChangeNetwork(
	ctx context.Context, networkIndex int,
) error {
	if networkIndex < 0 || networkIndex >= len(n.profiles) {
		return domain.ErrNetworkInvalidIndex
	}
	if networkIndex == n.Index() {
		return nil
	}

	n.registry.Account().Logout(ctx)

	n.lock.Lock()
	n.networkIndex = networkIndex
	n.lock.Unlock()

	if err := n.configRepo.UpdateNetworkIndex(ctx, networkIndex); err != nil {
		return err
	}
	log.Debugf("network: index changed to %d", networkIndex)

	n.broadcaster.Broadcast(bus.MustNewMessage(
		bus.ChangeNetworkSuccess,
		networkIndexPayload{NetworkIndex: networkIndex},
	))
	return nil
}

/**** message handlers ****/

type networkIndexPayload struct {
	NetworkIndex int `json:"networkIndex"`
}

type networkView struct {
	Name        string `json:"name"`
	ExplorerURL string `json:"explorerUrl"`
}

func (n *NetworkService) registerHandlers(dispatcher bus.Dispatcher) {
	dispatcher.RegisterHandler(bus.ChangeNetwork,
		func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			req := networkIndexPayload{}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, n.ChangeNetwork(ctx, req.NetworkIndex)
		})

	dispatcher.RegisterHandler(bus.GetNetworks,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			views := make([]networkView, 0, len(n.profiles))
			for _, profile := range n.profiles {
				views = append(views, networkView{
					Name:        profile.Name,
					ExplorerURL: profile.ExplorerURL,
				})
			}
			return views, nil
		})

	dispatcher.RegisterHandler(bus.GetNetworkIndex,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			return n.Index(), nil
		})

	dispatcher.RegisterHandler(bus.GetNetworkExplorerURL,
		func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			return n.ExplorerURL(), nil
		})
}
