package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"whisperd/pkg/types"
)

type Manager struct {
	mu           sync.RWMutex
	registry     []types.Model
	modelsDir    string
	tempDir      string
	defaultModel string
	device       string
	computeType  string
	beamSize     int
	language     string
	instances    map[string]*Instance
	lastErr      string
	startTime    time.Time

	// Counters surfaced via /status.
	loadsTotal          uint64
	loadFailuresTotal   uint64
	transcriptionsTotal uint64

	// Queue config
	maxQueueDepth int
	maxWait       time.Duration

	// loadGroup coalesces concurrent first-time loads of the same model id
	// into one construction attempt sequence.
	loadGroup singleflight.Group

	adapter   EngineAdapter
	publisher EventPublisher
	log       zerolog.Logger
}

// New constructs a Manager with package defaults for queueing and decoding.
func New(reg []types.Model, modelsDir, defaultModel, device, computeType string) *Manager {
	return NewWithConfig(ManagerConfig{
		Registry:     reg,
		ModelsDir:    modelsDir,
		DefaultModel: defaultModel,
		Device:       device,
		ComputeType:  computeType,
	})
}

// SetLogger installs a structured logger used by the manager.
func (m *Manager) SetLogger(l zerolog.Logger) {
	m.mu.Lock()
	m.log = l
	m.mu.Unlock()
}

func (m *Manager) logger() zerolog.Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.log
}

// Ready reports whether the process can serve. It never triggers a model
// load: readiness probes must stay cheap.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instances != nil
}

// ListModels returns the models discovered in the local cache directory.
func (m *Manager) ListModels() []types.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Model, len(m.registry))
	copy(out, m.registry)
	return out
}

// Close releases every cached engine session.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var firstErr error
	for id, inst := range m.instances {
		if inst.session != nil {
			if err := inst.session.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		delete(m.instances, id)
	}
	return firstErr
}
