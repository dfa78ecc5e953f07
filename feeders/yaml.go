package feeders

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YamlFeeder reads YAML files. Unknown keys are rejected.
type YamlFeeder struct {
	Path         string
	verboseDebug bool
	logger       interface {
		Debug(msg string, args ...any)
	}
}

// NewYamlFeeder creates a new YamlFeeder that reads from the specified YAML file
func NewYamlFeeder(filePath string) *YamlFeeder {
	return &YamlFeeder{Path: filePath}
}

// SetVerboseDebug enables or disables verbose debug logging
func (y *YamlFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	y.verboseDebug = enabled
	y.logger = logger
	if enabled && logger != nil {
		y.logger.Debug("Verbose YAML feeder debugging enabled")
	}
}

// Feed decodes the file into target.
func (y *YamlFeeder) Feed(target interface{}) error {
	y.debug("YamlFeeder: Starting feed process", "filePath", y.Path)

	data, err := os.ReadFile(y.Path)
	if err != nil {
		return wrapReadError("YAML", y.Path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		y.debug("YamlFeeder: Feed completed with error", "filePath", y.Path, "error", err)
		return wrapParseError("YAML", y.Path, err)
	}

	y.debug("YamlFeeder: Feed completed successfully", "filePath", y.Path)
	return nil
}

// Raw decodes the file into plain maps and slices for schema checks.
func (y *YamlFeeder) Raw() (interface{}, error) {
	data, err := os.ReadFile(y.Path)
	if err != nil {
		return nil, wrapReadError("YAML", y.Path, err)
	}
	var out interface{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, wrapParseError("YAML", y.Path, err)
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

func (y *YamlFeeder) debug(msg string, args ...any) {
	if y.verboseDebug && y.logger != nil {
		y.logger.Debug(msg, args...)
	}
}
