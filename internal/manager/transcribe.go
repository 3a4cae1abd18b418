package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"whisperd/internal/registry"
	"whisperd/pkg/types"
)

const previewRunes = 200

// TranscribeRequest carries one uploaded audio blob and its optional model
// override into the manager.
type TranscribeRequest struct {
	// Model is the client-requested model key; empty selects the default.
	Model string
	// Filename as declared by the upload; its extension names the spool file.
	Filename string
	// Audio is the raw uploaded content.
	Audio []byte
}

// ResolveModel maps the request's model key to the canonical engine id,
// applying the configured default for empty keys.
func (m *Manager) ResolveModel(key string) string {
	if strings.TrimSpace(key) == "" {
		key = m.defaultModel
	}
	return registry.Resolve(key)
}

// Transcribe spools the audio to a request-unique temp file, ensures an
// engine instance for the resolved model, runs inference, and shapes the
// OpenAI transcription payload. The spool file is removed on every exit
// path.
func (m *Manager) Transcribe(ctx context.Context, req TranscribeRequest) (types.TranscriptionResponse, error) {
	modelID := m.ResolveModel(req.Model)

	audioPath, cleanup, err := m.spoolAudio(req.Audio, req.Filename)
	if err != nil {
		return types.TranscriptionResponse{}, err
	}
	defer cleanup()

	inst, err := m.ensureInstance(ctx, modelID)
	if err != nil {
		return types.TranscriptionResponse{}, err
	}
	release, err := m.beginTranscription(ctx, inst)
	if err != nil {
		return types.TranscriptionResponse{}, err
	}
	defer release()

	log := m.logger()
	start := time.Now()
	result, err := inst.session.Transcribe(ctx, audioPath, TranscribeParams{
		BeamSize: m.beamSize,
		Language: m.language,
	})
	if err != nil {
		if ctx.Err() != nil {
			return types.TranscriptionResponse{}, ctx.Err()
		}
		transcriptionsTotal.WithLabelValues(modelID, "error").Inc()
		log.Error().Err(err).Str("model", modelID).Msg("whisper transcription failed")
		return types.TranscriptionResponse{}, ErrTranscriptionFailed(err)
	}
	elapsed := time.Since(start)

	text := joinSegmentText(result.Segments)
	m.mu.Lock()
	m.transcriptionsTotal++
	m.mu.Unlock()
	transcriptionsTotal.WithLabelValues(modelID, "ok").Inc()
	transcriptionDuration.WithLabelValues(modelID).Observe(elapsed.Seconds())
	m.publish("transcription_done", modelID, map[string]any{"segments": len(result.Segments)})
	log.Info().
		Str("model", modelID).
		Str("file", req.Filename).
		Dur("dur", elapsed).
		Int("segments", len(result.Segments)).
		Str("text_preview", preview(text)).
		Msg("completed transcription")

	return types.TranscriptionResponse{
		ID:       "transcription-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Object:   "transcription",
		Created:  time.Now().Unix(),
		Model:    modelID,
		Text:     text,
		Segments: result.Segments,
	}, nil
}

// spoolAudio persists audio to a request-unique file under the configured
// temp dir. The returned cleanup removes the file and is safe to call on
// every exit path.
func (m *Manager) spoolAudio(audio []byte, filename string) (string, func(), error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".mp3"
	}
	path := filepath.Join(m.tempDir, "whisperd-"+uuid.NewString()+ext)
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return "", func() {}, fmt.Errorf("spool audio: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log := m.logger()
			log.Warn().Err(err).Str("path", path).Msg("failed to remove temp audio file")
		}
	}
	return path, cleanup, nil
}

// joinSegmentText concatenates trimmed, non-empty segment texts with single
// spaces, matching the engine's full-transcript convention.
func joinSegmentText(segs []types.Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// preview returns a bounded prefix of text for log lines.
func preview(text string) string {
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes])
}
