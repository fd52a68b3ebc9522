// Package cache is the run-to-run store of node outputs. A Cache is
// owned by the caller and handed to the executor for each run; the
// executor never retains one. Entries align to node indices, so a cache
// stays valid across graph edits as long as the caller clears the
// entries those edits invalidate.
package cache
