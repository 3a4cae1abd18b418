package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"whisperd/pkg/types"
)

// fakeSession returns canned segments and records Close calls.
type fakeSession struct {
	mu            sync.Mutex
	segments      []types.Segment
	transcribeErr error
	delay         time.Duration
	calls         int
	closed        bool
}

func (s *fakeSession) Transcribe(ctx context.Context, audioPath string, params TranscribeParams) (TranscribeResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return TranscribeResult{}, ctx.Err()
		}
	}
	if _, err := os.Stat(audioPath); err != nil {
		return TranscribeResult{}, err
	}
	if s.transcribeErr != nil {
		return TranscribeResult{}, s.transcribeErr
	}
	return TranscribeResult{Segments: s.segments}, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// fakeAdapter fails the first failFirst Load attempts, then hands out
// session. Every attempt's compute config is recorded.
type fakeAdapter struct {
	mu        sync.Mutex
	failFirst int
	loadErr   error
	loadDelay time.Duration
	attempts  []types.ComputeConfig
	session   *fakeSession
}

func (a *fakeAdapter) Load(ctx context.Context, modelPath string, cfg types.ComputeConfig) (EngineSession, error) {
	if a.loadDelay > 0 {
		time.Sleep(a.loadDelay)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attempts = append(a.attempts, cfg)
	if len(a.attempts) <= a.failFirst {
		if a.loadErr != nil {
			return nil, a.loadErr
		}
		return nil, errors.New("compute type not supported on this device")
	}
	if a.session == nil {
		a.session = &fakeSession{segments: defaultSegments()}
	}
	return a.session, nil
}

func (a *fakeAdapter) attemptCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.attempts)
}

func defaultRegistry() []types.Model {
	return []types.Model{
		{ID: "base", Name: "Whisper base"},
		{ID: "large-v3", Name: "Whisper large-v3"},
	}
}

func defaultSegments() []types.Segment {
	return []types.Segment{
		{ID: 0, Start: 0, End: 1.5, Text: " Hello"},
		{ID: 1, Start: 1.5, End: 3.0, Text: " world. "},
	}
}

// newTestManager builds a manager over a temp models dir containing a
// ggml-base.bin artifact, wired to the given fake adapter.
func newTestManager(t *testing.T, adapter EngineAdapter, mutate func(*ManagerConfig)) *Manager {
	t.Helper()
	modelsDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(modelsDir, "ggml-base.bin"), []byte("fake"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	cfg := ManagerConfig{
		ModelsDir:    modelsDir,
		TempDir:      t.TempDir(),
		DefaultModel: "base",
		Device:       "cpu",
		ComputeType:  "float16",
		Adapter:      adapter,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewWithConfig(cfg)
}

// tempEntries lists leftover spool files in the manager's temp dir.
func tempEntries(t *testing.T, m *Manager) []string {
	t.Helper()
	entries, err := os.ReadDir(m.tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
