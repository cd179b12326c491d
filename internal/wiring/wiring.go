// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/reel/internal/adapters/config"
	_ "go.trai.ch/reel/internal/adapters/gateway"
	_ "go.trai.ch/reel/internal/adapters/logger"
	_ "go.trai.ch/reel/internal/adapters/notify"
	_ "go.trai.ch/reel/internal/adapters/telemetry"
	_ "go.trai.ch/reel/internal/adapters/tokenstore"
	// Register app and engine nodes.
	_ "go.trai.ch/reel/internal/app"
	_ "go.trai.ch/reel/internal/engine/querycache"
	_ "go.trai.ch/reel/internal/engine/registry"
)
