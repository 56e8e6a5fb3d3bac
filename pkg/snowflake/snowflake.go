package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.RWMutex
	node *snowflake.Node
)

func init() {
	node, _ = snowflake.NewNode(1)
}

// Init replaces the generator node; every writer process needs a distinct id.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// GenID returns a time-ordered id for favourites and notifications.
func GenID() uint64 {
	mu.RLock()
	defer mu.RUnlock()
	return uint64(node.Generate().Int64())
}
