package tree

import (
	"sort"

	"github.com/minio/highwayhash"
)

// hashKey is a fixed, arbitrary 32-byte key: Hash is a content
// fingerprint for duplicate detection, not a keyed MAC, so a
// per-process random key would only make results harder to reproduce
// across runs.
var hashKey = make([]byte, 32)

// Hash returns a content fingerprint of n and its subtree: two nodes
// with the same name, attributes, and children hash identically
// regardless of attribute insertion order. Used by walk.Canonicalize's
// duplicate-section merge to drop byte-for-byte duplicate children
// instead of concatenating them twice (spec.md §4.2).
func Hash(n *Node) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		panic(err) // hashKey is a fixed, valid 32-byte key; this can't fail
	}
	writeNode(h, n)
	return h.Sum64()
}

func writeNode(h hashWriter, n *Node) {
	if n == nil {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte(n.Name))
	h.Write([]byte{0})

	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		for _, v := range n.Attrs[name].Strings() {
			h.Write([]byte(v))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	h.Write([]byte{2})

	for _, c := range n.Children {
		writeNode(h, c)
	}
}

type hashWriter interface {
	Write(p []byte) (int, error)
}
