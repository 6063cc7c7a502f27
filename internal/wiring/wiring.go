// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wasmbuild/internal/adapters/config"
	_ "go.trai.ch/wasmbuild/internal/adapters/logger"
	_ "go.trai.ch/wasmbuild/internal/adapters/shell"
	_ "go.trai.ch/wasmbuild/internal/adapters/wasm"
	// Register app nodes.
	_ "go.trai.ch/wasmbuild/internal/app"
)
