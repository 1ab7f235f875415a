package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

const onInstallControllerName = "onInstall"

// OnInstallService reacts once to an install or update of the daemon: every
// reachable page context is told to reset its injected state, so no
// dangling listeners from a prior version survive. A plain restart with an
// unchanged version triggers nothing.
type OnInstallService struct {
	configRepo domain.ConfigRepository
	tabManager ports.TabManager
	version    string
}

// OnInstallServiceOpts defines the dependencies needed to create an
// OnInstallService with NewOnInstallService.
type OnInstallServiceOpts struct {
	Registry   *Registry
	ConfigRepo domain.ConfigRepository
	TabManager ports.TabManager
	// Version is the build version of the running daemon.
	Version string
}

// NewOnInstallService registers the on-install controller. It has no
// asynchronous setup and initializes immediately.
func NewOnInstallService(opts OnInstallServiceOpts) *OnInstallService {
	svc := &OnInstallService{
		configRepo: opts.ConfigRepo,
		tabManager: opts.TabManager,
		version:    opts.Version,
	}

	opts.Registry.RegisterController(onInstallControllerName)
	opts.Registry.onInstall = svc
	opts.Registry.ControllerInitialized(onInstallControllerName)

	return svc
}

// CheckInstallOrUpdate compares the persisted version with the running one
// and, on first install or version change, refreshes every reachable page
// context before recording the new version.
func (o *OnInstallService) CheckInstallOrUpdate(ctx context.Context) error {
	storedVersion, err := o.configRepo.GetAppVersion(ctx)
	if err != nil {
		return err
	}
	if storedVersion == o.version {
		return nil
	}

	if len(storedVersion) == 0 {
		log.Infof("installed version %s", o.version)
	} else {
		log.Infof("updated from version %s to %s", storedVersion, o.version)
	}

	o.RefreshAllDappTabs()
	return o.configRepo.UpdateAppVersion(ctx, o.version)
}

// RefreshAllDappTabs notifies every open page context with a resolvable
// address that the daemon was installed or updated. Privileged contexts
// without an address are skipped without error.
func (o *OnInstallService) RefreshAllDappTabs() {
	for _, tab := range o.tabManager.ListTabs() {
		if len(tab.URL()) == 0 {
			continue
		}
		if err := tab.Notify(
			bus.Message{Type: bus.InstalledOrUpdated},
		); err != nil {
			log.WithError(err).Warnf("oninstall: notify tab %s failed", tab.URL())
		}
	}
}
