package manager

import (
	"context"
	"time"
)

// beginTranscription reserves a queue slot and then the single in-flight
// slot for inst. Engine sessions are not verified to be safe for concurrent
// inference, so calls against one instance are serialized here.
// Returns a release func to be deferred.
func (m *Manager) beginTranscription(ctx context.Context, inst *Instance) (func(), error) {
	// Try to reserve a queue slot with timeout
	select {
	case inst.queueCh <- struct{}{}:
		// reserved queue slot
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-time.After(m.maxWait):
		return func() {}, tooBusyError{modelID: inst.ID}
	}

	// Wait to acquire the single in-flight slot
	acquired := false
	defer func() {
		if !acquired {
			<-inst.queueCh
		}
	}()
	select {
	case inst.genCh <- struct{}{}:
		acquired = true
		m.mu.Lock()
		inst.LastUsed = time.Now()
		m.mu.Unlock()
		return func() { <-inst.genCh; <-inst.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-time.After(m.maxWait):
		return func() {}, tooBusyError{modelID: inst.ID}
	}
}
