package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pqrs-org/karabiner-go-core/internal/klog"
)

var log = klog.New("config")

// Load reads and parses path, tolerating a missing or invalid file by
// falling back to DefaultSet with IsLoaded = false (§7: "Configuration-load
// failure: log, fall back to default profile, set is_loaded = false").
func Load(path string) *Set {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config file unreadable, using defaults")
		s := DefaultSet()
		s.IsLoaded = false
		return s
	}

	if err := ValidateDocument(data); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config failed schema validation, using defaults")
		s := DefaultSet()
		s.IsLoaded = false
		return s
	}

	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config failed to parse, using defaults")
		fallback := DefaultSet()
		fallback.IsLoaded = false
		return fallback
	}
	s.IsLoaded = true
	return &s
}

// Save writes s to path atomically (temp file + rename), mirroring the
// write pattern used throughout this module's ambient stack.
func Save(s *Set, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("config: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("config: rename: %w", err)
	}
	return nil
}
