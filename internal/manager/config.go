package manager

import (
	"os"
	"time"

	"whisperd/internal/common/fsutil"
	"whisperd/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultBeamSize      = 5
)

// ManagerConfig encapsulates all tunables for Manager construction. The
// launch script validates and supplies these; the manager does not read
// environment variables itself.
type ManagerConfig struct {
	// Registry of locally present models, typically from registry.LoadDir.
	Registry []types.Model
	// ModelsDir holds downloaded ggml artifacts.
	ModelsDir string
	// TempDir receives per-request audio spools; empty means os.TempDir.
	TempDir string
	// DefaultModel is used when a request omits the model field.
	DefaultModel string
	// Device and ComputeType seed the compute candidate cascade.
	Device      string
	ComputeType string
	// BeamSize for decoding; 0 applies the package default.
	BeamSize int
	// Language hint; empty means autodetect.
	Language string
	// Queue config
	MaxQueueDepth int
	MaxWait       time.Duration
	// Adapter overrides the engine runtime (tests inject fakes here).
	Adapter EngineAdapter
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		registry:     cfg.Registry,
		modelsDir:    cfg.ModelsDir,
		tempDir:      cfg.TempDir,
		defaultModel: cfg.DefaultModel,
		device:       cfg.Device,
		computeType:  cfg.ComputeType,
		beamSize:     cfg.BeamSize,
		language:     cfg.Language,
		instances:    make(map[string]*Instance),
	}
	if expanded, err := fsutil.ExpandHome(cfg.ModelsDir); err == nil {
		m.modelsDir = expanded
	}
	if m.tempDir == "" {
		m.tempDir = os.TempDir()
	}
	if m.beamSize <= 0 {
		m.beamSize = defaultBeamSize
	}
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.Adapter != nil {
		m.adapter = cfg.Adapter
	} else {
		m.adapter = NewWhisperAdapter()
	}
	if cfg.Publisher != nil {
		m.publisher = cfg.Publisher
	} else {
		m.publisher = noopPublisher{}
	}
	m.startTime = time.Now()
	return m
}
