package metrics

import (
	"errors"
)

// Snapshot gathers the custom registry and returns metric family names mapped to
// their series count.
func Snapshot() (map[string]int, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, errors.Join(ErrGather, err)
	}
	out := make(map[string]int, len(families))
	for _, f := range families {
		out[f.GetName()] = len(f.GetMetric())
	}
	return out, nil
}
