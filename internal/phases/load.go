package phases

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// LoadDir reads every *.toml file directly inside dir. Any unreadable, undecodable or invalid
// file fails the whole load.
func LoadDir(dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read phase definitions directory: %w", err)
	}

	var encounters []Encounter
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		enc, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Error().Err(err).Str("file", entry.Name()).Msg("Failed to load phase definitions")
			return nil, err
		}
		log.Debug().Str("file", entry.Name()).Str("encounter", enc.Name).Int("phases", len(enc.Phases)).Msg("Loaded phase definitions")
		encounters = append(encounters, enc)
	}

	c, err := NewCollection(encounters...)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", dir).Int("encounters", c.Len()).Msg("Successfully loaded definitions files")
	return c, nil
}

// LoadFile decodes a single definitions file.
func LoadFile(path string) (Encounter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Encounter{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	enc, err := Parse(data)
	if err != nil {
		return Encounter{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return enc, nil
}

// Parse decodes TOML phase definitions. Unknown keys are rejected.
func Parse(data []byte) (Encounter, error) {
	var enc Encounter
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&enc); err != nil {
		return Encounter{}, fmt.Errorf("failed to decode phase definitions: %w", err)
	}
	return enc, nil
}
