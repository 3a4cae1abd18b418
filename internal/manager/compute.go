package manager

import (
	"strings"

	"whisperd/pkg/types"
)

// computeCandidates derives the ordered compute-configuration candidates for
// the requested (device, compute type) pair. The sequence is deterministic,
// finite, and non-empty: the literal request always comes first, float16
// gains reduced-precision integer fallbacks, and "auto" closes the list as
// the engine-chosen last resort. Hardware support for a given precision is
// not knowable before an actual load attempt, so the loader walks this list
// in order.
func computeCandidates(device, computeType string) []types.ComputeConfig {
	dev := strings.TrimSpace(device)
	if dev == "" {
		dev = "auto"
	}
	requested := strings.TrimSpace(computeType)
	if requested == "" {
		requested = "auto"
	}

	var out []types.ComputeConfig
	add := func(ct string) {
		for _, c := range out {
			if c.ComputeType == ct {
				return
			}
		}
		out = append(out, types.ComputeConfig{Device: dev, ComputeType: ct})
	}

	add(requested)
	if strings.ToLower(requested) == "float16" {
		add("int8_float32")
		add("int8")
	}
	add("auto")
	return out
}
