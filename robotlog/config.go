package robotlog

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/slamlog/record"
)

// Config describes how logs are read.
type Config struct {
	// ScanFormat is "auto", "plain" or "counted". Empty means auto.
	ScanFormat string `json:"scan_format,omitempty"`
	// MaxLineBytes rejects longer lines when positive.
	MaxLineBytes int `json:"max_line_bytes,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if _, formatErr := record.ParseScanFormat(cfg.ScanFormat); formatErr != nil {
		err = multierr.Append(err, utils.NewConfigValidationError(path, formatErr))
	}
	if cfg.MaxLineBytes < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError(path,
			errors.Errorf("max_line_bytes must be non-negative, got %d", cfg.MaxLineBytes)))
	}
	return err
}

// ReadConfig decodes and validates a JSON config.
func ReadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot decode robot log config")
	}
	if err := cfg.Validate("robotlog"); err != nil {
		return nil, err
	}
	return &cfg, nil
}
