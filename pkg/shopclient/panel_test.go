package shopclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPanelHappyPath(t *testing.T) {
	p := NewPanel()
	require.Equal(t, StateClosed, p.State())

	require.NoError(t, p.OpenCart())
	require.Equal(t, StateCart, p.State())

	require.NoError(t, p.ProceedToCheckout())
	require.Equal(t, StateCheckout, p.State())

	closed := make(chan struct{})
	require.NoError(t, p.ConfirmOrder(10*time.Millisecond, func() { close(closed) }))
	require.Equal(t, StateConfirming, p.State())

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("panel did not close after confirmation")
	}
	require.Equal(t, StateClosed, p.State())
}

func TestPanelRejectsBadTransitions(t *testing.T) {
	p := NewPanel()

	require.ErrorIs(t, p.ProceedToCheckout(), ErrBadTransition)
	require.ErrorIs(t, p.ConfirmOrder(time.Millisecond, nil), ErrBadTransition)

	require.NoError(t, p.OpenCart())
	require.ErrorIs(t, p.OpenCart(), ErrBadTransition)
}

func TestPanelBackFromCheckout(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.OpenCart())
	require.NoError(t, p.ProceedToCheckout())

	require.NoError(t, p.OpenCart())
	require.Equal(t, StateCart, p.State())
}

func TestStaleTimerCannotOverrideUserClose(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.OpenCart())
	require.NoError(t, p.ProceedToCheckout())

	fired := make(chan struct{}, 1)
	require.NoError(t, p.ConfirmOrder(20*time.Millisecond, func() { fired <- struct{}{} }))

	// the user closes and reopens the panel before the timer fires
	p.Close()
	require.NoError(t, p.OpenCart())

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, StateCart, p.State())
	select {
	case <-fired:
		t.Fatal("stale timer callback ran after user transition")
	default:
	}
}
