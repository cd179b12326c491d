package tokenstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reel/internal/adapters/config"
	"go.trai.ch/reel/internal/adapters/logger"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
)

// NodeID is the unique identifier for the token store Graft node.
const NodeID graft.ID = "adapter.token_store"

func init() {
	graft.Register(graft.Node[ports.TokenStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.TokenStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFileStore(cfg.TokenPath, log), nil
		},
	})
}
