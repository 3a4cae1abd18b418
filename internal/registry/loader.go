package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"whisperd/internal/common/fsutil"
	"whisperd/pkg/types"
)

// LoadDir scans a directory for ggml-*.bin whisper model artifacts and
// builds a registry from filenames. ID is the model name with the ggml-
// prefix and .bin extension stripped (e.g. "ggml-large-v3.bin" -> "large-v3").
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing cache dir means no models downloaded yet, not a
			// startup failure.
			return nil, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, "ggml-") || !strings.HasSuffix(lower, ".bin") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, "ggml-"), ".bin")
		p := filepath.Join(abs, name)
		m := types.Model{ID: id, Name: "Whisper " + id, Path: p}
		if fi, err := e.Info(); err == nil {
			m.SizeMB = int(fi.Size() / (1024 * 1024))
		}
		models = append(models, m)
	}
	return models, nil
}

// ArtifactPath returns the expected on-disk path for a canonical model id
// inside dir. It does not check existence.
func ArtifactPath(dir, id string) string {
	return filepath.Join(dir, "ggml-"+id+".bin")
}
