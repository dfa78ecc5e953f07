package rtverify

import (
	"fmt"
	"reflect"

	"github.com/golobby/cast"
)

// tagDefault holds the default value of a Config field. The `desc` tag only
// documents the field.
const tagDefault = "default"

// Config controls how a Validator runs. The verdict for a given App never
// depends on it, except that Aggregate selects how many diagnostics are
// reported.
type Config struct {
	Aggregate   bool   `yaml:"aggregate" json:"aggregate" toml:"aggregate" env:"AGGREGATE" default:"false" desc:"Report every diagnostic instead of stopping at the first"`
	EmitEvents  bool   `yaml:"emitEvents" json:"emitEvents" toml:"emitEvents" env:"EMIT_EVENTS" default:"true" desc:"Send CloudEvents to registered observers"`
	EventSource string `yaml:"eventSource" json:"eventSource" toml:"eventSource" env:"EVENT_SOURCE" default:"rtverify" desc:"CloudEvents source attribute"`
}

// Validate implements the config validation contract.
func (c *Config) Validate() error {
	if c.EventSource == "" {
		return ErrInvalidEventSource
	}
	return nil
}

// Feeder populates a config struct from some source.
type Feeder interface {
	Feed(target interface{}) error
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	// Defaults are static tags on Config; they always parse.
	_ = ProcessConfigDefaults(cfg)
	return cfg
}

// LoadConfig applies defaults, then each feeder in order, then validates.
func LoadConfig(feeders ...Feeder) (*Config, error) {
	cfg := &Config{}
	if err := ProcessConfigDefaults(cfg); err != nil {
		return nil, err
	}
	for _, f := range feeders {
		if err := f.Feed(cfg); err != nil {
			return nil, fmt.Errorf("failed to feed config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProcessConfigDefaults sets fields tagged `default:"value"` that are still
// zero. Values are converted with golobby/cast, so any scalar kind it
// understands is supported.
func ProcessConfigDefaults(cfg interface{}) error {
	if cfg == nil {
		return ErrConfigNil
	}

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrConfigNotPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrConfigNotStruct
	}

	return processStructDefaults(v)
}

func processStructDefaults(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := processStructDefaults(field); err != nil {
				return err
			}
			continue
		}

		defaultVal, hasDefault := fieldType.Tag.Lookup(tagDefault)
		if !hasDefault || !field.IsZero() {
			continue
		}

		if err := setDefaultValue(field, defaultVal); err != nil {
			return fmt.Errorf("failed to set default value for %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

func setDefaultValue(field reflect.Value, defaultVal string) error {
	switch field.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDefaults, field.Kind())
	}

	converted, err := cast.FromType(defaultVal, field.Type())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDefaultValueParse, err)
	}
	field.Set(reflect.ValueOf(converted).Convert(field.Type()))
	return nil
}
