package resultful

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/resultful/internal/tracing"
)

//go:embed default.yaml
var defaultConfig []byte

// loadConfig reads the config at path on top of the embedded default.
// The default alone is used for an empty path.
func loadConfig(path string) (tracing.Config, error) {
	cfg, err := decodeConfig(tracing.Config{}, defaultConfig)
	if err != nil {
		return tracing.Config{}, fmt.Errorf("decode default config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return tracing.Config{}, fmt.Errorf("read config: %w", err)
		}
		cfg, err = decodeConfig(cfg, data)
		if err != nil {
			return tracing.Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if err := cfg.Check(); err != nil {
		return tracing.Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// decodeConfig decodes data over base. Fields missing in data keep their base values.
func decodeConfig(base tracing.Config, data []byte) (tracing.Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&base); err != nil && !errors.Is(err, io.EOF) {
		return tracing.Config{}, err
	}

	return base, nil
}
