package dag

import (
	"fmt"
	"slices"
	"strings"
)

// orderKeyWidth pads local identifiers so that lexicographic comparison of
// keys matches numeric comparison of suffixes up to five digits.
const orderKeyWidth = 5

// NodeOrderKey maps a node to a sort key. Layers keep their members sorted
// by it.
type NodeOrderKey func(*Node) string

// EdgeOrderKey maps an edge to a sort key. Nodes keep their outgoing and
// incoming edge lists sorted by it.
type EdgeOrderKey func(*Edge) string

// IDOrderKey orders nodes lexicographically by layer, then numerically by
// local identifier: "0.2" sorts before "0.10", which sorts before "1.1".
func IDOrderKey(n *Node) string {
	return fmt.Sprintf("%s %*s", n.layerID, orderKeyWidth, n.localID)
}

// EdgeIDOrderKey orders edges by parent, then child, using [IDOrderKey] for
// both endpoints.
func EdgeIDOrderKey(e *Edge) string {
	return IDOrderKey(e.Parent()) + "->" + IDOrderKey(e.Child())
}

// sortIDs stable-sorts ids by the key computed for each of them.
func sortIDs(ids []string, key func(string) string) {
	keys := make(map[string]string, len(ids))
	for _, id := range ids {
		keys[id] = key(id)
	}
	slices.SortStableFunc(ids, func(a, b string) int {
		return strings.Compare(keys[a], keys[b])
	})
}
