//go:build whisper

package manager

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	wav "github.com/go-audio/wav"

	"whisperd/pkg/types"
)

// whisperBuilt indicates this binary was compiled with real whisper support.
var whisperBuilt = true

// whisperAdapter constructs in-process whisper.cpp sessions.
type whisperAdapter struct{}

func NewWhisperAdapter() EngineAdapter { return &whisperAdapter{} }

// whisperSession owns the loaded model.
type whisperSession struct {
	model whisper.Model
}

func (a *whisperAdapter) Load(ctx context.Context, modelPath string, cfg types.ComputeConfig) (EngineSession, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	// Numeric precision is baked into the ggml artifact, so any candidate
	// whose artifact loads succeeds; device placement is decided by the
	// compiled backend. The cfg still participates in candidate ordering
	// and diagnostics.
	m, err := whisper.New(modelPath)
	if err != nil {
		return nil, err
	}
	return &whisperSession{model: m}, nil
}

func (s *whisperSession) Transcribe(ctx context.Context, audioPath string, params TranscribeParams) (TranscribeResult, error) {
	if s.model == nil {
		return TranscribeResult{}, errors.New("whisper model not initialized")
	}
	samples, err := decodeWAVSamples(audioPath)
	if err != nil {
		return TranscribeResult{}, err
	}
	wctx, err := s.model.NewContext()
	if err != nil {
		return TranscribeResult{}, err
	}
	if params.Language != "" {
		if err := wctx.SetLanguage(params.Language); err != nil {
			return TranscribeResult{}, err
		}
	}
	if params.BeamSize > 0 {
		wctx.SetBeamSize(params.BeamSize)
	}
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		if ctx.Err() != nil {
			return TranscribeResult{}, ctx.Err()
		}
		return TranscribeResult{}, err
	}
	var segs []types.Segment
	for i := 0; ; i++ {
		seg, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return TranscribeResult{}, err
		}
		tokens := make([]int, 0, len(seg.Tokens))
		for _, tok := range seg.Tokens {
			tokens = append(tokens, tok.Id)
		}
		segs = append(segs, types.Segment{
			ID:     i,
			Start:  seg.Start.Seconds(),
			End:    seg.End.Seconds(),
			Text:   seg.Text,
			Tokens: tokens,
		})
	}
	return TranscribeResult{Segments: segs}, nil
}

func (s *whisperSession) Close() error {
	if s.model != nil {
		err := s.model.Close()
		s.model = nil
		return err
	}
	return nil
}

// decodeWAVSamples reads a 16 kHz mono WAV file into float32 samples as the
// whisper context expects.
func decodeWAVSamples(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	return buf.AsFloat32Buffer().Data, nil
}
