package feeders

import (
	"bytes"
	"encoding/json"
	"os"
)

// JSONFeeder reads JSON files. Unknown fields are rejected.
type JSONFeeder struct {
	Path         string
	verboseDebug bool
	logger       interface {
		Debug(msg string, args ...any)
	}
}

// NewJSONFeeder creates a new JSONFeeder that reads from the specified JSON file
func NewJSONFeeder(filePath string) *JSONFeeder {
	return &JSONFeeder{Path: filePath}
}

// SetVerboseDebug enables or disables verbose debug logging
func (j *JSONFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	j.verboseDebug = enabled
	j.logger = logger
	if enabled && logger != nil {
		j.logger.Debug("Verbose JSON feeder debugging enabled")
	}
}

// Feed decodes the file into target.
func (j *JSONFeeder) Feed(target interface{}) error {
	j.debug("JSONFeeder: Starting feed process", "filePath", j.Path)

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return wrapReadError("JSON", j.Path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		j.debug("JSONFeeder: Feed completed with error", "filePath", j.Path, "error", err)
		return wrapParseError("JSON", j.Path, err)
	}

	j.debug("JSONFeeder: Feed completed successfully", "filePath", j.Path)
	return nil
}

// Raw decodes the file into plain maps and slices for schema checks.
func (j *JSONFeeder) Raw() (interface{}, error) {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return nil, wrapReadError("JSON", j.Path, err)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, wrapParseError("JSON", j.Path, err)
	}
	return out, nil
}

func (j *JSONFeeder) debug(msg string, args ...any) {
	if j.verboseDebug && j.logger != nil {
		j.logger.Debug(msg, args...)
	}
}
