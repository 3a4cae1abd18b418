package registry

import "strings"

// modelAliases maps human-facing model names to the canonical ids the
// engine's naming scheme supports. The turbo variant has no ggml artifact
// of its own, so it maps to the closest canonical large model.
var modelAliases = map[string]string{
	"large-v3-turbo": "large-v3",
}

// Resolve maps a requested model name to the canonical engine id.
// Unknown names pass through unchanged; the engine is the final arbiter of
// validity. Resolution is pure and deterministic.
func Resolve(modelKey string) string {
	key := strings.TrimSpace(modelKey)
	if canonical, ok := modelAliases[strings.ToLower(key)]; ok {
		return canonical
	}
	return key
}
