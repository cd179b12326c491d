package notify

import (
	"io"
	"os"
	"sync"

	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/ui/style"
)

var _ ports.Navigator = (*Navigator)(nil)

// hints maps application routes to what a terminal user should do instead.
var hints = map[string]string{
	domain.RouteLogin: "Your session has expired. Run `reel login` to sign in again.",
}

// Navigator translates route changes into terminal hints.
type Navigator struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

// NewNavigator creates a Navigator writing to w, defaulting to stderr.
func NewNavigator(w io.Writer) *Navigator {
	if w == nil {
		w = os.Stderr
	}
	return &Navigator{w: w}
}

// Navigate records route and prints its hint. Repeated navigation to the
// current route prints nothing.
func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if route == n.last {
		return
	}
	n.last = route

	hint, ok := hints[route]
	if !ok {
		hint = "Open " + route
	}
	_, _ = io.WriteString(n.w, style.Arrow+" "+hint+"\n")
}

// Route returns the last route navigated to.
func (n *Navigator) Route() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}
