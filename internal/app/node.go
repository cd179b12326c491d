package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reel/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/reel/internal/adapters/gateway"    //nolint:depguard // Wired in app layer
	"go.trai.ch/reel/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/reel/internal/adapters/notify"     //nolint:depguard // Wired in app layer
	"go.trai.ch/reel/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/reel/internal/adapters/tokenstore" //nolint:depguard // Wired in app layer
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/engine/querycache"
	"go.trai.ch/reel/internal/engine/registry"
)

const (
	// SessionNodeID is the unique identifier for the session controller Graft node.
	SessionNodeID graft.ID = "app.session"
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*Session]{
		ID:        SessionNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gateway.NodeID,
			tokenstore.NodeID,
			querycache.NodeID,
			notify.NavigatorNodeID,
			logger.NodeID,
		},
		Run: runSessionNode,
	})

	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			SessionNodeID,
			registry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			session, err := graft.Dep[*Session](ctx)
			if err != nil {
				return nil, err
			}

			reg, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(session, reg, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.ConfigNodeID,
			querycache.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runSessionNode(ctx context.Context) (*Session, error) {
	gw, err := graft.Dep[*gateway.Client](ctx)
	if err != nil {
		return nil, err
	}

	tokens, err := graft.Dep[ports.TokenStore](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[*querycache.Client](ctx)
	if err != nil {
		return nil, err
	}

	navigator, err := graft.Dep[ports.Navigator](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	session := NewSession(gw, tokens, cache, navigator, log)
	gw.AddAuthListener(session)
	return session, nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	log.SetJSON(cfg.LogJSON)

	cache, err := graft.Dep[*querycache.Client](ctx)
	if err != nil {
		return nil, err
	}

	tp, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(a, log,
		tp.Shutdown,
		func(context.Context) error {
			cache.Close()
			return nil
		},
	), nil
}
