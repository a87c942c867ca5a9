package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyCatalog = "catalog"
	keyOutput  = "output"
	keyLogging = "logging"
	keyServer  = "server"
	keyCache   = "cache"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
// Other keys are ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyCatalog: true,
	keyOutput:  true,
	keyLogging: true,
	keyServer:  true,
	keyCache:   true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]any
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so it can be decoded onto the
		// typed target field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes data into a fresh value of the section's type
// and replaces that section of target.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyCatalog:
		return replaceSection(&target.Catalog, data)
	case keyOutput:
		return replaceSection(&target.Output, data)
	case keyLogging:
		return replaceSection(&target.Logging, data)
	case keyServer:
		return replaceSection(&target.Server, data)
	case keyCache:
		return replaceSection(&target.Cache, data)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

func replaceSection[T any](field *T, data []byte) error {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	*field = v
	return nil
}
