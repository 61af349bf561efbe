package system

import (
	"os"
	"sort"
	"strings"
)

// Environ returns the current process environment with overrides applied.
// Overridden keys replace any existing entry rather than being appended, so
// the child sees exactly one value per key.
func Environ(overrides map[string]string) []string {
	return mergeEnv(os.Environ(), overrides)
}

func mergeEnv(base []string, overrides map[string]string) []string {
	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		env = append(env, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}
