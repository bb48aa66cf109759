// Package snowflake implements [murmur.IDGenerator] with Snowflake IDs.
//
// IDs are time-ordered and unique per node, so message identifiers sort in
// creation order.
package snowflake

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/fwojciec/murmur"
)

// Interface compliance check.
var _ murmur.IDGenerator = (*Generator)(nil)

// Generator issues Snowflake IDs from a single node.
type Generator struct {
	node *snowflake.Node
}

// New creates a Generator for the given node number (0-1023).
func New(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake: %w", err)
	}
	return &Generator{node: n}, nil
}

// NewID returns the next ID in base-10 form.
func (g *Generator) NewID() string {
	return g.node.Generate().String()
}
