package notify

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reel/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the notifier Graft node.
	NodeID graft.ID = "adapter.notifier"
	// NavigatorNodeID is the unique identifier for the navigator Graft node.
	NavigatorNodeID graft.ID = "adapter.navigator"
)

func init() {
	graft.Register(graft.Node[ports.Notifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Notifier, error) {
			return New(nil), nil
		},
	})

	graft.Register(graft.Node[ports.Navigator]{
		ID:        NavigatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Navigator, error) {
			return NewNavigator(nil), nil
		},
	})
}
