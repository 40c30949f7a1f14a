// Package events defines the composition events emitted by the yard.
//
// Available event kinds:
//   - composed: a train was created with its founding engine
//   - attached / detached: a vehicle joined or left a train
//   - boarded / alighted: passengers were added or removed
//   - loaded / unloaded: freight was added or removed
package events
