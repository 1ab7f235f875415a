package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistryOpensAfterSealAndInit(t *testing.T) {
	r := NewRegistry()
	r.RegisterController("a")
	r.RegisterController("b")

	r.ControllerInitialized("a")
	r.Seal()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, r.WaitReady(ctx), context.DeadlineExceeded)

	r.ControllerInitialized("b")

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	require.NoError(t, r.WaitReady(ctx2))
}

func TestRegistryDoesNotOpenBeforeSeal(t *testing.T) {
	r := NewRegistry()
	r.RegisterController("a")
	r.ControllerInitialized("a")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, r.WaitReady(ctx), context.DeadlineExceeded)

	r.Seal()
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	require.NoError(t, r.WaitReady(ctx2))
}

func TestRegistryAccessorBlocksUntilReady(t *testing.T) {
	r := NewRegistry()
	r.RegisterController("account")
	r.account = &AccountService{}

	got := make(chan *AccountService)
	go func() {
		got <- r.Account()
	}()

	select {
	case <-got:
		t.Fatal("accessor returned before the barrier opened")
	case <-time.After(50 * time.Millisecond):
	}

	r.ControllerInitialized("account")
	r.Seal()

	select {
	case svc := <-got:
		require.NotNil(t, svc)
	case <-time.After(time.Second):
		t.Fatal("accessor did not unblock")
	}
}
