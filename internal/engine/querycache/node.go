package querycache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reel/internal/adapters/config"
	"go.trai.ch/reel/internal/adapters/logger"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
)

// NodeID is the unique identifier for the query cache Graft node.
const NodeID graft.ID = "engine.querycache"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(
				WithStaleTime(cfg.StaleTime),
				WithGCTime(cfg.GCTime),
				WithLogger(log),
			), nil
		},
	})
}
