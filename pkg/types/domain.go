package types

// Model represents a speech model discoverable in the local cache directory.
type Model struct {
	// Stable identifier for the model.
	// example: large-v3
	ID string `json:"id" example:"large-v3"`
	// Human-friendly name.
	// example: Whisper large-v3
	Name string `json:"name" example:"Whisper large-v3"`
	// Absolute path to the model artifact on disk, when known.
	// example: /home/user/.cache/whisperd/ggml-large-v3.bin
	Path string `json:"path,omitempty" example:"/home/user/.cache/whisperd/ggml-large-v3.bin"`
	// Estimated artifact size in MB.
	// example: 3100
	SizeMB int `json:"size_mb,omitempty" example:"3100"`
}

// ComputeConfig is a (device, compute type) pair controlling where and in
// what numeric precision the engine runs.
type ComputeConfig struct {
	// Target device: cpu, cuda, or auto.
	// example: auto
	Device string `json:"device" example:"auto"`
	// Numeric precision: float16, int8, int8_float32, auto, ...
	// example: float16
	ComputeType string `json:"compute_type" example:"float16"`
}

func (c ComputeConfig) String() string {
	return c.Device + "/" + c.ComputeType
}
