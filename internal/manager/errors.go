package manager

import (
	"fmt"
	"strings"
)

// modelUnavailableError signals that a model's artifacts are not present
// locally, so the HTTP layer can return 503 with remediation guidance.
type modelUnavailableError struct{ id string }

func (e modelUnavailableError) Error() string {
	return fmt.Sprintf("model %q is not available locally; download ggml-%s.bin into the models directory before retrying", e.id, e.id)
}

// ErrModelUnavailable constructs a modelUnavailableError for id.
func ErrModelUnavailable(id string) error { return modelUnavailableError{id: id} }

// IsModelUnavailable reports whether err indicates missing model artifacts.
func IsModelUnavailable(err error) bool {
	_, ok := err.(modelUnavailableError)
	return ok
}

// modelLoadFailedError signals that every compute-configuration candidate
// failed to construct an engine instance. Retrying identically will not help;
// the candidate cascade was the retry mechanism.
type modelLoadFailedError struct {
	id       string
	attempts int
	last     error
}

func (e modelLoadFailedError) Error() string {
	if e.last != nil {
		return fmt.Sprintf("unable to load model %q with any compute type (%d attempts): %v", e.id, e.attempts, e.last)
	}
	return fmt.Sprintf("unable to load model %q with any compute type (%d attempts)", e.id, e.attempts)
}

func (e modelLoadFailedError) Unwrap() error { return e.last }

// ErrModelLoadFailed constructs a modelLoadFailedError.
func ErrModelLoadFailed(id string, attempts int, last error) error {
	return modelLoadFailedError{id: id, attempts: attempts, last: last}
}

// IsModelLoadFailed reports whether err indicates an exhausted load cascade.
func IsModelLoadFailed(err error) bool {
	_, ok := err.(modelLoadFailedError)
	return ok
}

// transcriptionFailedError signals that a loaded engine failed during
// inference on one specific input (e.g. corrupt audio).
type transcriptionFailedError struct{ cause error }

func (e transcriptionFailedError) Error() string { return "transcription failed" }

func (e transcriptionFailedError) Unwrap() error { return e.cause }

// ErrTranscriptionFailed wraps an engine inference failure.
func ErrTranscriptionFailed(cause error) error { return transcriptionFailedError{cause: cause} }

// IsTranscriptionFailed reports whether err indicates an inference failure.
func IsTranscriptionFailed(err error) bool {
	_, ok := err.(transcriptionFailedError)
	return ok
}

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ modelID string }

func (e tooBusyError) Error() string { return "too busy: " + e.modelID }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// engineUnavailableError signals that the whisper runtime was not compiled
// into this binary.
type engineUnavailableError struct{ msg string }

func (e engineUnavailableError) Error() string { return e.msg }

// ErrEngineUnavailable constructs an engineUnavailableError.
func ErrEngineUnavailable(msg string) error { return engineUnavailableError{msg: msg} }

// IsEngineUnavailable reports whether err indicates a missing engine runtime.
func IsEngineUnavailable(err error) bool {
	_, ok := err.(engineUnavailableError)
	return ok
}

// looksLikeMissingModel inspects an engine construction error for phrases
// that indicate absent model files rather than an unsupported configuration.
func looksLikeMissingModel(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	for _, phrase := range []string{"not found", "no such file", "could not be found"} {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
