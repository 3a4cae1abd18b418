//go:build !whisper

package manager

// This file provides a no-CGO stub for the whisper adapter. It is compiled
// when the 'whisper' build tag is NOT set, keeping default builds and CI
// CGO-free. The real adapter lives in adapter_whisper.go (tagged 'whisper').

import (
	"context"

	"whisperd/pkg/types"
)

// whisperAdapter is a stub that satisfies EngineAdapter but refuses to load
// models without the 'whisper' build tag. This avoids any mocked behavior in
// production binaries built without CGO support.
type whisperAdapter struct{}

func NewWhisperAdapter() EngineAdapter { return &whisperAdapter{} }

func (a *whisperAdapter) Load(ctx context.Context, modelPath string, cfg types.ComputeConfig) (EngineSession, error) {
	// Fail fast: whisper runtime not available in this build.
	return nil, ErrEngineUnavailable("whisper support not built (missing 'whisper' build tag)")
}
