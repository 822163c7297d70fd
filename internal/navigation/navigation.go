package navigation

import "sync"

// Screen identifies a page of the application.
type Screen string

const (
	HomeScreen Screen = "home"
	MapScreen  Screen = "map"
)

// Navigator keeps a back stack of screens and tells listeners about changes.
type Navigator struct {
	mu        sync.Mutex
	stack     []Screen
	listeners []func(Screen)
}

func New(initial Screen) *Navigator {
	return &Navigator{stack: []Screen{initial}}
}

// OnChange registers fn to be called with the new current screen.
func (n *Navigator) OnChange(fn func(Screen)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// Navigate pushes screen unless it is already current.
func (n *Navigator) Navigate(screen Screen) {
	n.mu.Lock()
	if n.stack[len(n.stack)-1] == screen {
		n.mu.Unlock()
		return
	}
	n.stack = append(n.stack, screen)
	listeners := n.listeners
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(screen)
	}
}

// Back pops the current screen. It returns false on the root screen.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.stack) == 1 {
		n.mu.Unlock()
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	current := n.stack[len(n.stack)-1]
	listeners := n.listeners
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(current)
	}
	return true
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}
