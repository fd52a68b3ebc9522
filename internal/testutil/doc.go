// Package testutil provides the shared fixtures the engine's tests run
// against: a registry of small arithmetic functions with patchable
// sources, and the five-node reference graph exercised throughout the
// executor and document tests.
package testutil
