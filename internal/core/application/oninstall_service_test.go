package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreshInstallNotifiesTabsAndPersistsVersion(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	dapp := &mockTab{url: "https://dapp.example.com"}
	privileged := &mockTab{}
	h.tabManager.tabs = append(h.tabManager.tabs, dapp, privileged)

	require.NoError(t, h.onInstall.CheckInstallOrUpdate(ctx))

	require.Equal(t, 1, dapp.notified())
	require.Equal(t, 0, privileged.notified())

	version, err := h.configRepo.GetAppVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", version)
}

func TestUnchangedVersionIsNoOp(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	require.NoError(t, h.onInstall.CheckInstallOrUpdate(ctx))

	dapp := &mockTab{url: "https://dapp.example.com"}
	h.tabManager.tabs = append(h.tabManager.tabs, dapp)

	require.NoError(t, h.onInstall.CheckInstallOrUpdate(ctx))
	require.Equal(t, 0, dapp.notified())
}

func TestVersionChangeNotifiesTabs(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	require.NoError(t, h.configRepo.UpdateAppVersion(ctx, "0.9.0"))

	dapp := &mockTab{url: "https://dapp.example.com"}
	h.tabManager.tabs = append(h.tabManager.tabs, dapp)

	require.NoError(t, h.onInstall.CheckInstallOrUpdate(ctx))

	require.Equal(t, 1, dapp.notified())
	version, err := h.configRepo.GetAppVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", version)
}

func TestNotifyFailureDoesNotAbortTheSweep(t *testing.T) {
	h := newTestHarness(t, newMockWallet("addr1"))
	ctx := context.Background()

	broken := &mockTab{url: "https://broken.example.com"}
	broken.err = errors.New("tab gone")
	healthy := &mockTab{url: "https://dapp.example.com"}
	h.tabManager.tabs = append(h.tabManager.tabs, broken, healthy)

	require.NoError(t, h.onInstall.CheckInstallOrUpdate(ctx))
	require.Equal(t, 1, healthy.notified())
}
