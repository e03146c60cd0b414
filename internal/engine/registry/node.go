package registry

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the command registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return Builtin(), nil
		},
	})
}
