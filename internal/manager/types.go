package manager

import (
	"time"

	"whisperd/pkg/types"
)

// State represents lifecycle state of the manager/instances.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Instance represents a live engine bound to one resolved model id and the
// compute configuration that succeeded for it.
type Instance struct {
	ID           string
	State        State
	Compute      types.ComputeConfig
	LastUsed     time.Time
	LoadAttempts int
	// Queueing primitives
	genCh   chan struct{} // size 1: single in-flight transcription
	queueCh chan struct{} // buffered: queue slots
	// Engine session backing this instance.
	session EngineSession
}
