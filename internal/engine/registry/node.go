package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reel/internal/adapters/gateway"
	"go.trai.ch/reel/internal/adapters/notify"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/engine/querycache"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{gateway.NodeID, querycache.NodeID, notify.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			gw, err := graft.Dep[*gateway.Client](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[*querycache.Client](ctx)
			if err != nil {
				return nil, err
			}
			notifier, err := graft.Dep[ports.Notifier](ctx)
			if err != nil {
				return nil, err
			}
			return New(gw, cache, notifier)
		},
	})
}
