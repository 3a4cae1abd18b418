package types

// Segment is one timed span of the transcript, passed through from the
// engine unmodified. Field set mirrors the OpenAI transcription segment.
type Segment struct {
	// Sequential segment index starting at 0.
	// example: 0
	ID int `json:"id" example:"0"`
	// Seek offset used by the engine; always 0 for whole-file decodes.
	Seek int `json:"seek"`
	// Start of the span in seconds.
	// example: 0.0
	Start float64 `json:"start" example:"0.0"`
	// End of the span in seconds.
	// example: 3.84
	End float64 `json:"end" example:"3.84"`
	// Raw segment text as produced by the engine.
	// example:  Hello world.
	Text string `json:"text" example:" Hello world."`
	// Token ids for the span, when the engine exposes them.
	Tokens []int `json:"tokens"`
	// Sampling temperature used for this span.
	Temperature float64 `json:"temperature"`
	// Average log probability over the span's tokens.
	AvgLogprob float64 `json:"avg_logprob"`
	// Compression ratio of the span text.
	CompressionRatio float64 `json:"compression_ratio"`
	// Probability that the span contains no speech.
	NoSpeechProb float64 `json:"no_speech_prob"`
}

// TranscriptionResponse is the OpenAI-shaped body returned by
// POST /v1/audio/transcriptions.
type TranscriptionResponse struct {
	// Request-unique identifier.
	// example: transcription-7f9c2de07c0a4b7f
	ID string `json:"id" example:"transcription-7f9c2de07c0a4b7f"`
	// Always "transcription".
	Object string `json:"object" example:"transcription"`
	// Unix seconds at completion time.
	// example: 1700000000
	Created int64 `json:"created" example:"1700000000"`
	// Resolved model id that produced the transcript.
	// example: large-v3
	Model string `json:"model" example:"large-v3"`
	// Full concatenated transcript.
	// example: Hello world.
	Text string `json:"text" example:"Hello world."`
	// Ordered timed spans; concatenation is consistent with Text.
	Segments []Segment `json:"segments"`
}

// ModelsResponse wraps the list of models returned by GET /v1/models.
type ModelsResponse struct {
	// Models present in the local cache directory.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: multipart field "file" is required
	Error string `json:"error" example:"multipart field \"file\" is required"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// InstanceStatus summarizes one loaded engine instance for GET /status.
type InstanceStatus struct {
	// Resolved model id this instance serves.
	// example: large-v3
	ModelID string `json:"model_id" example:"large-v3"`
	// Lifecycle state: loading, ready, or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Compute configuration that succeeded for this instance.
	Compute ComputeConfig `json:"compute"`
	// Last time this instance served a request (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Number of compute configurations attempted before success.
	// example: 2
	LoadAttempts int `json:"load_attempts" example:"2"`
	// Current queue length for incoming requests.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Number of in-flight transcriptions (0 or 1).
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued requests before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Loaded engine instances.
	Instances []InstanceStatus `json:"instances"`
	// Default model id used when requests omit one.
	// example: large-v3
	DefaultModel string `json:"default_model" example:"large-v3"`
	// Requested device from process configuration.
	// example: auto
	Device string `json:"device" example:"auto"`
	// Requested compute type from process configuration.
	// example: auto
	ComputeType string `json:"compute_type" example:"auto"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total successful model loads since start.
	// example: 2
	LoadsTotal uint64 `json:"loads_total" example:"2"`
	// Total failed engine construction attempts since start.
	// example: 1
	LoadFailuresTotal uint64 `json:"load_failures_total" example:"1"`
	// Total transcriptions served since start.
	// example: 40
	TranscriptionsTotal uint64 `json:"transcriptions_total" example:"40"`
}
