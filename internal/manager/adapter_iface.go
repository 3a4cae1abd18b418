package manager

import (
	"context"

	"whisperd/pkg/types"
)

// EngineAdapter abstracts the speech-recognition runtime used by the
// Manager. Concrete implementations (e.g., whisper.cpp) should satisfy this
// interface.
type EngineAdapter interface {
	// Load constructs an engine session for the given model artifact and
	// compute configuration. A failed Load with one configuration does not
	// preclude success with another.
	Load(ctx context.Context, modelPath string, cfg types.ComputeConfig) (EngineSession, error)
}

// EngineSession is a loaded engine bound to one model. Sessions are not
// assumed safe for concurrent Transcribe calls; the manager serializes
// access per instance.
type EngineSession interface {
	// Transcribe decodes the audio file at audioPath and returns its timed
	// segments. Implementations should return early when ctx is canceled.
	Transcribe(ctx context.Context, audioPath string, params TranscribeParams) (TranscribeResult, error)
	// Close releases resources associated with the session.
	Close() error
}

// TranscribeParams captures decoding parameters passed to the adapter.
type TranscribeParams struct {
	// Beam size for decoding; <= 0 lets the engine choose.
	BeamSize int
	// Optional ISO language hint; empty means autodetect.
	Language string
}

// TranscribeResult carries the engine's output for one audio file.
type TranscribeResult struct {
	// Ordered timed spans as produced by the engine (pass-through).
	Segments []types.Segment
}
