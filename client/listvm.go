package client

import (
	"context"
	"sync"

	"main/model"
)

type ListState int

const (
	ListLoading ListState = iota
	ListReady
)

// ListViewModel drives the prompt list screen. It is Loading until the first
// snapshot for the current owner arrives, then Ready with whatever the
// snapshot contained; an empty set is Ready, not Loading. Switching owners
// drops the old data synchronously so records from the previous identity are
// never visible, not even for one render.
type ListViewModel struct {
	gateway PromptGateway

	mu      sync.Mutex
	state   ListState
	prompts []model.Prompt
	err     error
	owner   string
	sub     *Subscription
	gen     int

	updates chan struct{}
}

func NewListViewModel(gateway PromptGateway) *ListViewModel {
	return &ListViewModel{
		gateway: gateway,
		state:   ListLoading,
		updates: make(chan struct{}, 1),
	}
}

// SetOwner points the list at a new identity. The previous subscription is
// closed first and its in-flight snapshots are discarded by generation, so a
// late delivery from the old stream cannot resurface.
func (vm *ListViewModel) SetOwner(ownerID string) error {
	vm.mu.Lock()
	if vm.owner == ownerID && vm.sub != nil {
		vm.mu.Unlock()
		return nil
	}

	if vm.sub != nil {
		vm.sub.Close()
		vm.sub = nil
	}
	vm.gen++
	gen := vm.gen
	vm.owner = ownerID
	vm.state = ListLoading
	vm.prompts = nil
	vm.err = nil
	vm.mu.Unlock()
	vm.signal()

	if ownerID == "" {
		return nil
	}

	sub, err := vm.gateway.Subscribe(ownerID)
	if err != nil {
		vm.mu.Lock()
		if gen == vm.gen {
			vm.err = err
		}
		vm.mu.Unlock()
		vm.signal()
		return err
	}

	vm.mu.Lock()
	if gen != vm.gen {
		// Owner changed again while we were dialing.
		vm.mu.Unlock()
		sub.Close()
		return nil
	}
	vm.sub = sub
	vm.mu.Unlock()

	go vm.pump(gen, sub)
	return nil
}

func (vm *ListViewModel) pump(gen int, sub *Subscription) {
	for snap := range sub.Snapshots {
		vm.apply(gen, snap)
	}
}

func (vm *ListViewModel) apply(gen int, snap Snapshot) {
	vm.mu.Lock()
	if gen != vm.gen {
		vm.mu.Unlock()
		return
	}
	if snap.Err != nil {
		// Keep the previous data; the error is advisory.
		vm.err = snap.Err
	} else {
		vm.state = ListReady
		vm.prompts = snap.Prompts
		vm.err = nil
	}
	vm.mu.Unlock()
	vm.signal()
}

func (vm *ListViewModel) State() ListState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

func (vm *ListViewModel) Prompts() []model.Prompt {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]model.Prompt, len(vm.prompts))
	copy(out, vm.prompts)
	return out
}

func (vm *ListViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Updates signals after every state change. The channel has a single slot;
// consumers re-read the whole state on each tick.
func (vm *ListViewModel) Updates() <-chan struct{} {
	return vm.updates
}

func (vm *ListViewModel) signal() {
	select {
	case vm.updates <- struct{}{}:
	default:
	}
}

// RequestDelete asks confirm before issuing the deletion; a decline is a
// complete no-op. The local list is not touched either way, the authoritative
// snapshot push does the removal.
func (vm *ListViewModel) RequestDelete(ctx context.Context, id string, confirm func() bool) error {
	if !confirm() {
		return nil
	}
	if err := vm.gateway.Delete(ctx, id); err != nil {
		vm.mu.Lock()
		vm.err = err
		vm.mu.Unlock()
		vm.signal()
		return err
	}
	return nil
}

// Close stops the active subscription. Safe to call more than once.
func (vm *ListViewModel) Close() {
	vm.mu.Lock()
	sub := vm.sub
	vm.sub = nil
	vm.gen++
	vm.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}
