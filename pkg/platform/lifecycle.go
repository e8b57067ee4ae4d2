// Package platform carries host signals into the clock, most importantly
// whether its screen is visible.
package platform

import "sync"

// Lifecycle is the process-wide lifecycle service. Hosts report visibility
// changes through Lifecycle.SetState.
var Lifecycle = NewLifecycleService()

// LifecycleService tracks the host's lifecycle state and notifies handlers
// when it changes.
type LifecycleService struct {
	mu       sync.RWMutex
	state    LifecycleState
	handlers map[int]LifecycleHandler
	nextID   int
}

// LifecycleState represents the current app lifecycle state.
type LifecycleState string

const (
	// LifecycleStateResumed indicates the screen is visible and responding to user input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive indicates the screen is visible but not focused,
	// such as while a system dialog or the app switcher is shown.
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStatePaused indicates the screen is not visible but the process is still running.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached indicates the process is still hosted but detached from any view.
	LifecycleStateDetached LifecycleState = "detached"
)

// Visible reports whether a screen in this state should keep its clock running.
func (s LifecycleState) Visible() bool {
	return s == LifecycleStateResumed
}

// LifecycleHandler is called when lifecycle state changes.
type LifecycleHandler func(state LifecycleState)

// NewLifecycleService returns a service in the resumed state.
func NewLifecycleService() *LifecycleService {
	return &LifecycleService{
		state:    LifecycleStateResumed,
		handlers: make(map[int]LifecycleHandler),
	}
}

// State returns the current lifecycle state.
func (l *LifecycleService) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// AddHandler registers a handler to be called on lifecycle changes.
// Returns a function that can be called to remove the handler.
func (l *LifecycleService) AddHandler(handler LifecycleHandler) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.handlers[id] = handler
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.handlers, id)
		l.mu.Unlock()
	}
}

// SetState updates the lifecycle state and notifies handlers. Setting the
// current state again is a no-op. Handlers run on the caller's goroutine
// after the lock is released, so they may call back into the service.
func (l *LifecycleService) SetState(newState LifecycleState) {
	l.mu.Lock()
	if l.state == newState {
		l.mu.Unlock()
		return
	}
	l.state = newState
	handlers := make([]LifecycleHandler, 0, len(l.handlers))
	for _, h := range l.handlers {
		handlers = append(handlers, h)
	}
	l.mu.Unlock()

	for _, h := range handlers {
		h(newState)
	}
}
