// Package manager provides lifecycle, admission, and transcription
// coordination for whisper engine instances. It is structured into small
// files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (State, Instance).
//   - errors.go: error taxonomy and helpers (IsModelUnavailable, IsTooBusy, ...).
//   - compute.go: ordered compute-configuration candidate derivation.
//   - load.go: cached instance lookup and load-with-fallback (single-flight).
//   - admission.go: per-instance queueing and single in-flight transcription.
//   - transcribe.go: transcription entry point, temp-file spooling, response shaping.
//   - status.go: Status reporting for the HTTP layer.
//   - metrics.go: Prometheus counters for loads and transcriptions.
//
// Build tags and runtimes:
//
//   - In-process whisper.cpp (standard):
//     Uses the ggerganov whisper.cpp Go bindings. Enabled with `-tags=whisper`.
//     Files: adapter_whisper.go. A no-CGO stub compiles when the tag is not
//     set: adapter_whisper_stub.go.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New/NewWithConfig, Ready, ListModels, Status,
// Transcribe). Internal types are subject to change.
package manager
