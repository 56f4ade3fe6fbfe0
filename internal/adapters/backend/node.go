package backend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sassline/internal/adapters/logger"
	"go.trai.ch/sassline/internal/core/ports"
)

// NodeID is the unique identifier for the backend factory Graft node.
const NodeID graft.ID = "adapter.backend"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log, nil), nil
		},
	})
}
