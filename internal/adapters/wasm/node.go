package wasm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wasmbuild/internal/core/ports"
)

// NodeID is the unique identifier for the inspector Graft node.
const NodeID graft.ID = "adapter.inspector"

func init() {
	graft.Register(graft.Node[ports.Inspector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Inspector, error) {
			return NewInspector(), nil
		},
	})
}
