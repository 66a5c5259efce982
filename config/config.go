// Package config loads raw user-configuration maps for the container from
// YAML files and environment variables. The resulting maps are fed to
// container.WithConfiguration and validated by the extensions' declared
// options during Init; nothing here knows which keys are legal.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadFile parses a YAML file whose top-level node is a mapping.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// LoadEnv collects environment variables starting with prefix into a
// configuration map. The prefix is stripped, the rest is lowercased, and
// underscores become dots, so with prefix "APP_" the variable APP_CACHE_DRIVER
// yields the key "cache.driver". All values are strings.
//
// When envFiles are given they are loaded first (missing or malformed files
// fail); without arguments a ".env" alongside the process is loaded when
// present, as a convenience for local development.
func LoadEnv(prefix string, envFiles ...string) (map[string]any, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("config: loading env files: %w", err)
		}
	} else {
		// Non-fatal: .env may not exist in production
		_ = godotenv.Load()
	}

	values := make(map[string]any)
	for _, entry := range os.Environ() {
		key, value, _ := strings.Cut(entry, "=")
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.TrimPrefix(key, prefix)
		if name == "" {
			continue
		}
		name = strings.ToLower(strings.ReplaceAll(name, "_", "."))
		values[name] = value
	}
	return values, nil
}

// Merge shallow-merges maps left to right; keys in later maps win. The inputs
// are not mutated.
func Merge(maps ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
