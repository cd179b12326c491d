package gateway

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reel/internal/adapters/config"
	"go.trai.ch/reel/internal/adapters/logger"
	"go.trai.ch/reel/internal/adapters/telemetry"
	"go.trai.ch/reel/internal/adapters/tokenstore"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
)

// NodeID is the unique identifier for the gateway Graft node.
const NodeID graft.ID = "adapter.gateway"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, tokenstore.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tokens, err := graft.Dep[ports.TokenStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tp, err := graft.Dep[*telemetry.Provider](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.APIURL, tokens, log,
				WithTimeout(cfg.RequestTimeout),
				WithRetry(cfg.RetryMax, nil),
				WithTracing(tp.Tracer(), tp.Propagator()),
			), nil
		},
	})
}
