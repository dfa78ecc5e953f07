package feeders

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// TomlFeeder reads TOML files. Keys the target does not know are rejected,
// except below an opaque key.
type TomlFeeder struct {
	Path         string
	opaque       []toml.Key
	verboseDebug bool
	logger       interface {
		Debug(msg string, args ...any)
	}
}

// NewTomlFeeder creates a new TomlFeeder that reads from the specified TOML file
func NewTomlFeeder(filePath string) *TomlFeeder {
	return &TomlFeeder{Path: filePath}
}

// WithOpaqueKeys marks dotted keys whose nested content is decoded into an
// untyped value. Keys below them are not reported as unknown.
func (t *TomlFeeder) WithOpaqueKeys(keys ...string) *TomlFeeder {
	for _, k := range keys {
		t.opaque = append(t.opaque, toml.Key(strings.Split(k, ".")))
	}
	return t
}

// SetVerboseDebug enables or disables verbose debug logging
func (t *TomlFeeder) SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) }) {
	t.verboseDebug = enabled
	t.logger = logger
	if enabled && logger != nil {
		t.logger.Debug("Verbose TOML feeder debugging enabled")
	}
}

// Feed decodes the file into target.
func (t *TomlFeeder) Feed(target interface{}) error {
	t.debug("TomlFeeder: Starting feed process", "filePath", t.Path)

	md, err := toml.DecodeFile(t.Path, target)
	if err != nil {
		t.debug("TomlFeeder: Feed completed with error", "filePath", t.Path, "error", err)
		return wrapParseError("TOML", t.Path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			if !t.isOpaque(k) {
				keys = append(keys, k.String())
			}
		}
		if len(keys) > 0 {
			return fmt.Errorf("%w: %s: %s", ErrUnknownKeys, t.Path, strings.Join(keys, ", "))
		}
	}

	t.debug("TomlFeeder: Feed completed successfully", "filePath", t.Path)
	return nil
}

// Raw decodes the file into plain maps and slices for schema checks.
func (t *TomlFeeder) Raw() (interface{}, error) {
	out := map[string]interface{}{}
	if _, err := toml.DecodeFile(t.Path, &out); err != nil {
		return nil, wrapParseError("TOML", t.Path, err)
	}
	return out, nil
}

func (t *TomlFeeder) debug(msg string, args ...any) {
	if t.verboseDebug && t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}

func (t *TomlFeeder) isOpaque(k toml.Key) bool {
	for _, prefix := range t.opaque {
		if len(k) > len(prefix) && slices.Equal(k[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}
