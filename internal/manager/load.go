package manager

import (
	"context"
	"time"

	"whisperd/internal/common/fsutil"
	"whisperd/internal/registry"
)

// ensureInstance returns the cached engine instance for modelID, loading it
// on first use. Concurrent first-time callers for the same id share one
// construction attempt sequence and one outcome; distinct ids load
// concurrently.
func (m *Manager) ensureInstance(ctx context.Context, modelID string) (*Instance, error) {
	m.mu.RLock()
	inst := m.instances[modelID]
	m.mu.RUnlock()
	if inst != nil && inst.State == StateReady {
		m.mu.Lock()
		inst.LastUsed = time.Now()
		m.mu.Unlock()
		return inst, nil
	}

	// The flight's outcome is shared by every coalesced waiter, so the load
	// must not die with whichever caller happened to lead it. A completed
	// load is cached and serves later requests even if the leader went away.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := m.loadGroup.Do(modelID, func() (any, error) {
		return m.loadInstance(loadCtx, modelID)
	})
	if err != nil {
		m.mu.Lock()
		m.lastErr = err.Error()
		m.mu.Unlock()
		return nil, err
	}
	return v.(*Instance), nil
}

// loadInstance walks the compute candidate list in order and caches the
// first engine session that constructs. Runs inside the single-flight group.
func (m *Manager) loadInstance(ctx context.Context, modelID string) (*Instance, error) {
	// Re-check the cache under the flight: a prior caller may have
	// completed between our miss and the group admitting us.
	m.mu.RLock()
	if inst := m.instances[modelID]; inst != nil && inst.State == StateReady {
		m.mu.RUnlock()
		return inst, nil
	}
	m.mu.RUnlock()

	artifact := registry.ArtifactPath(m.modelsDir, modelID)
	if !fsutil.PathExists(artifact) {
		modelLoadFailures.WithLabelValues(modelID, "missing_artifact").Inc()
		return nil, ErrModelUnavailable(modelID)
	}

	log := m.logger()
	var lastErr error
	attempts := 0
	for _, cand := range computeCandidates(m.device, m.computeType) {
		attempts++
		log.Info().
			Str("model", modelID).
			Str("device", cand.Device).
			Str("compute_type", cand.ComputeType).
			Msg("loading whisper model")
		sess, err := m.adapter.Load(ctx, artifact, cand)
		if err != nil {
			lastErr = err
			m.mu.Lock()
			m.loadFailuresTotal++
			m.mu.Unlock()
			modelLoadFailures.WithLabelValues(modelID, cand.ComputeType).Inc()
			log.Warn().
				Err(err).
				Str("model", modelID).
				Str("compute_type", cand.ComputeType).
				Msg("whisper model load attempt failed")
			if looksLikeMissingModel(err) {
				// Missing files will not appear under a different compute
				// type; tell the operator instead of walking the cascade.
				return nil, ErrModelUnavailable(modelID)
			}
			continue
		}

		inst := &Instance{
			ID:           modelID,
			State:        StateReady,
			Compute:      cand,
			LastUsed:     time.Now(),
			LoadAttempts: attempts,
			genCh:        make(chan struct{}, 1),
			queueCh:      make(chan struct{}, m.maxQueueDepth),
			session:      sess,
		}
		m.mu.Lock()
		m.instances[modelID] = inst
		m.loadsTotal++
		m.lastErr = ""
		m.mu.Unlock()
		modelLoadsTotal.WithLabelValues(modelID, cand.ComputeType).Inc()
		m.publish("model_loaded", modelID, map[string]any{
			"compute_type": cand.ComputeType,
			"attempts":     attempts,
		})
		return inst, nil
	}
	m.publish("model_load_failed", modelID, map[string]any{"attempts": attempts})
	return nil, ErrModelLoadFailed(modelID, attempts, lastErr)
}
