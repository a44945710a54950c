package shopclient

import (
	"errors"
	"sync"
	"time"
)

// The storefront panel is a small state machine. Every transition bumps a
// generation counter and delayed effects re-check it before applying, so a
// user closing the panel can never race a stale timer back open.

type State int

const (
	StateClosed State = iota
	StateCart
	StateCheckout
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateCart:
		return "cart"
	case StateCheckout:
		return "checkout"
	case StateConfirming:
		return "confirming"
	default:
		return "unknown"
	}
}

var ErrBadTransition = errors.New("invalid panel transition")

type Panel struct {
	mu    sync.Mutex
	state State
	gen   uint64
}

func NewPanel() *Panel {
	return &Panel{state: StateClosed}
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OpenCart enters the cart view from the closed panel or back from checkout.
func (p *Panel) OpenCart() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateClosed && p.state != StateCheckout {
		return ErrBadTransition
	}
	p.state = StateCart
	p.gen++
	return nil
}

func (p *Panel) ProceedToCheckout() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateCart {
		return ErrBadTransition
	}
	p.state = StateCheckout
	p.gen++
	return nil
}

func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateClosed
	p.gen++
}

// ConfirmOrder enters the confirming view and schedules the close that
// follows a successful checkout. The delayed close applies only if no other
// transition happened in between; onClose runs only when it does.
func (p *Panel) ConfirmOrder(closeAfter time.Duration, onClose func()) error {
	p.mu.Lock()
	if p.state != StateCheckout {
		p.mu.Unlock()
		return ErrBadTransition
	}
	p.state = StateConfirming
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	time.AfterFunc(closeAfter, func() {
		p.mu.Lock()
		if p.gen != gen || p.state != StateConfirming {
			p.mu.Unlock()
			return
		}
		p.state = StateClosed
		p.gen++
		p.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	})
	return nil
}
