package dag

import (
	"maps"
	"slices"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// Attributes seeds the attribute map of a passage, layer, node or edge.
// A nil Attributes is treated as empty.
type Attributes map[string]any

// Attrib is the attribute store owned by exactly one graph element.
// Reads are always permitted; writes fail once the owning passage is frozen.
type Attrib struct {
	p *Passage
	m map[string]any
}

func newAttrib(p *Passage, seed Attributes) *Attrib {
	m := make(map[string]any, len(seed))
	maps.Copy(m, seed)
	return &Attrib{p: p, m: m}
}

// Get returns the value stored under key.
func (a *Attrib) Get(key string) (any, bool) {
	v, ok := a.m[key]
	return v, ok
}

// Contains reports whether key is present.
func (a *Attrib) Contains(key string) bool {
	_, ok := a.m[key]
	return ok
}

// Len returns the number of stored keys.
func (a *Attrib) Len() int { return len(a.m) }

// Keys returns the stored keys in sorted order.
func (a *Attrib) Keys() []string {
	return slices.Sorted(maps.Keys(a.m))
}

// Copy returns a detached copy of the stored values.
func (a *Attrib) Copy() Attributes {
	return maps.Clone(Attributes(a.m))
}

// Set stores value under key.
func (a *Attrib) Set(key string, value any) error {
	if a.p.frozen {
		return errors.Frozen("attribute " + key)
	}
	a.m[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (a *Attrib) Delete(key string) error {
	if a.p.frozen {
		return errors.Frozen("attribute " + key)
	}
	delete(a.m, key)
	return nil
}
