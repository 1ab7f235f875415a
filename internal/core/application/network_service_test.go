package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eureka-network/eurekalite-daemon/internal/core/domain"
	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

func TestChangeNetworkInvalidIndex(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	require.ErrorIs(t, h.network.ChangeNetwork(ctx, -1), domain.ErrNetworkInvalidIndex)
	require.ErrorIs(t, h.network.ChangeNetwork(ctx, 3), domain.ErrNetworkInvalidIndex)
	require.Equal(t, 0, h.network.Index())
}

func TestChangeNetworkSameIndexIsNoOp(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	h.loginAndImport(t, "main")
	before := h.broadcaster.count(bus.ChangeNetworkSuccess)

	require.NoError(t, h.network.ChangeNetwork(ctx, 0))

	// No logout, no persisted index, no broadcast.
	require.NotNil(t, h.account.LoggedInAccount())
	require.Equal(t, before, h.broadcaster.count(bus.ChangeNetworkSuccess))
	index, err := h.configRepo.GetNetworkIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, -1, index)
}

func TestChangeNetworkLogsOutPersistsAndBroadcasts(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	h.loginAndImport(t, "main")
	require.NoError(t, h.network.ChangeNetwork(ctx, 1))

	require.Equal(t, 1, h.network.Index())
	require.Equal(t, domain.Testnet, h.network.Name())
	require.Nil(t, h.account.LoggedInAccount())
	require.False(t, h.account.infoPoller.IsRunning())

	index, err := h.configRepo.GetNetworkIndex(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, index)

	require.Equal(t, 1, h.broadcaster.count(bus.ChangeNetworkSuccess))
}

func TestChangeNetworkSwitchesAccountPartition(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	h.loginAndImport(t, "main")
	require.Len(t, h.account.Accounts(ctx), 1)

	require.NoError(t, h.network.ChangeNetwork(ctx, 1))
	require.Empty(t, h.account.Accounts(ctx))

	// The same key can live in both partitions without tripping the
	// duplicate-import check.
	require.NoError(t, h.account.ImportMnemonic(ctx, "test wallet", "some mnemonic"))
	require.Len(t, h.account.Accounts(ctx), 1)
	require.Equal(t, 0, h.broadcaster.count(bus.ImportMnemonicPrKeyFailure))
}

func TestNetworkIndexRestoredAtStartup(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	h.loginAndImport(t, "main")
	require.NoError(t, h.network.ChangeNetwork(ctx, 2))

	// A fresh service stack over the same config store comes back up on the
	// persisted network.
	h2 := &testHarness{
		registry:    NewRegistry(),
		dispatcher:  bus.NewDispatcher(),
		broadcaster: &mockBroadcaster{},
		configRepo:  h.configRepo,
	}
	h2.network = NewNetworkService(NetworkServiceOpts{
		Registry:       h2.registry,
		ConfigRepo:     h2.configRepo,
		Broadcaster:    h2.broadcaster,
		Dispatcher:     h2.dispatcher,
		WalletProvider: &mockWalletProvider{factory: h.factory},
		Profiles:       h.network.Networks(),
	})
	h2.registry.Seal()
	require.NoError(t, h2.registry.WaitReady(ctx))

	require.Equal(t, 2, h2.network.Index())
	require.Equal(t, domain.Regtest, h2.network.Name())
	h2.broadcaster.waitFor(t, bus.ChangeNetworkSuccess, 2*time.Second)
}
