// Package mocks provides hand-written test doubles for the store and auth
// interfaces. Each mock keeps its state in maps and exposes per-method
// function fields so individual tests can override behavior without
// defining a new type.
package mocks
