package cache

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/graph"
)

// Entry is the cached state of one node.
type Entry struct {
	// RunOrdinal is the run counter value at which the node last executed.
	RunOrdinal uint64
	// Outputs holds the payloads the node produced, one per output slot.
	Outputs []cty.Value
	// HasOutputs distinguishes "never executed" from "executed with zero
	// output slots".
	HasOutputs bool
	// ExecutedThisRun is a per-run diagnostic, cleared at the start of the
	// next run.
	ExecutedThisRun bool
}

// Cache stores entries aligned to node indices plus a monotonic run counter.
type Cache struct {
	entries []Entry
	runs    uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// RunOrdinal returns the number of runs this cache has been through.
func (c *Cache) RunOrdinal() uint64 {
	return c.runs
}

// BeginRun increments the run counter and clears the per-run diagnostics.
// It returns the ordinal of the run being started.
func (c *Cache) BeginRun() uint64 {
	c.runs++
	for i := range c.entries {
		c.entries[i].ExecutedThisRun = false
	}
	return c.runs
}

// Get returns the entry for a node, or nil when the node has never been
// cached. The returned entry is owned by the cache.
func (c *Cache) Get(idx graph.NodeIndex) *Entry {
	if int(idx) < 0 || int(idx) >= len(c.entries) {
		return nil
	}
	e := &c.entries[idx]
	if !e.HasOutputs && !e.ExecutedThisRun {
		return nil
	}
	return e
}

// Outputs returns a node's cached output payloads, revalidating the slot
// count: an entry whose shape no longer matches the caller's expectation
// reads as "no cached outputs".
func (c *Cache) Outputs(idx graph.NodeIndex, slots int) ([]cty.Value, bool) {
	e := c.Get(idx)
	if e == nil || !e.HasOutputs || len(e.Outputs) != slots {
		return nil, false
	}
	return e.Outputs, true
}

// Put replaces a node's entry with freshly produced outputs and marks the
// node as executed this run. The cache grows to cover the index.
func (c *Cache) Put(idx graph.NodeIndex, outputs []cty.Value, runOrdinal uint64) {
	c.grow(int(idx) + 1)
	c.entries[idx] = Entry{
		RunOrdinal:      runOrdinal,
		Outputs:         outputs,
		HasOutputs:      true,
		ExecutedThisRun: true,
	}
}

// Clear drops a node's entry. Callers must clear entries invalidated by
// graph edits that change a node's function or slot shape.
func (c *Cache) Clear(idx graph.NodeIndex) {
	if int(idx) >= 0 && int(idx) < len(c.entries) {
		c.entries[idx] = Entry{}
	}
}

// WasExecutedThisRun reports the per-run diagnostic for a node.
func (c *Cache) WasExecutedThisRun(idx graph.NodeIndex) bool {
	if int(idx) < 0 || int(idx) >= len(c.entries) {
		return false
	}
	return c.entries[idx].ExecutedThisRun
}

// HasOutputs reports whether a node has cached outputs.
func (c *Cache) HasOutputs(idx graph.NodeIndex) bool {
	if int(idx) < 0 || int(idx) >= len(c.entries) {
		return false
	}
	return c.entries[idx].HasOutputs
}

// Clone returns an independent copy. Output values are shared: cty values
// are immutable, and capsule payloads are opaque by contract.
func (c *Cache) Clone() *Cache {
	clone := &Cache{
		entries: make([]Entry, len(c.entries)),
		runs:    c.runs,
	}
	copy(clone.entries, c.entries)
	for i := range clone.entries {
		if clone.entries[i].Outputs != nil {
			outputs := make([]cty.Value, len(c.entries[i].Outputs))
			copy(outputs, c.entries[i].Outputs)
			clone.entries[i].Outputs = outputs
		}
	}
	return clone
}

// grow extends the entry slice to at least n slots.
func (c *Cache) grow(n int) {
	for len(c.entries) < n {
		c.entries = append(c.entries, Entry{})
	}
}
