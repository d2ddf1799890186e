// Package file persists the player aggregate and the tutorial cursor as
// JSON documents on disk, one file per document, replaced atomically on
// every save so a crash mid-write never leaves a torn snapshot behind.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"runemind/internal/app/ports"
)

const (
	stateFileName    = "state.json"
	progressFileName = "tutorial.json"
)

// readDocument decodes one JSON document, mapping a missing file to
// ports.ErrNotFound so callers can seed defaults instead.
func readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeDocument replaces the document atomically: encode into a temp file
// in the same directory, then rename over the target.
func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", filepath.Base(path), err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("stage %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("stage %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
