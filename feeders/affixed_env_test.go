package feeders

import (
	"errors"
	"testing"
)

func TestAffixedEnvFeeder(t *testing.T) {
	type Config struct {
		Aggregate bool   `env:"AGGREGATE"`
		Source    string `env:"EVENT_SOURCE"`
		Retries   int    `env:"RETRIES"`
		Nested    struct {
			Emit bool `env:"EMIT"`
		}
		Ignored string
	}

	t.Run("with prefix and suffix", func(t *testing.T) {
		t.Setenv("RTV_AGGREGATE_CI", "true")
		t.Setenv("RTV_EVENT_SOURCE_CI", "firmware")
		t.Setenv("RTV_RETRIES_CI", "3")
		t.Setenv("RTV_EMIT_CI", "true")

		var config Config
		err := NewAffixedEnvFeeder("rtv", "ci").Feed(&config)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !config.Aggregate {
			t.Errorf("Expected Aggregate to be true")
		}
		if config.Source != "firmware" {
			t.Errorf("Expected Source to be 'firmware', got '%s'", config.Source)
		}
		if config.Retries != 3 {
			t.Errorf("Expected Retries to be 3, got %d", config.Retries)
		}
		if !config.Nested.Emit {
			t.Errorf("Expected Nested.Emit to be true")
		}
	})

	t.Run("with suffix only", func(t *testing.T) {
		t.Setenv("EVENT_SOURCE_CI", "suffix")

		var config Config
		if err := NewAffixedEnvFeeder("", "CI").Feed(&config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.Source != "suffix" {
			t.Errorf("Expected Source to be 'suffix', got '%s'", config.Source)
		}
	})

	t.Run("unset variables leave fields alone", func(t *testing.T) {
		config := Config{Source: "keep"}
		if err := NewAffixedEnvFeeder("UNSET_PREFIX", "").Feed(&config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if config.Source != "keep" {
			t.Errorf("Expected Source to stay 'keep', got '%s'", config.Source)
		}
	})

	t.Run("conversion error", func(t *testing.T) {
		t.Setenv("RTV_RETRIES", "many")

		var config Config
		if err := NewAffixedEnvFeeder("RTV", "").Feed(&config); err == nil {
			t.Fatal("Expected a conversion error")
		}
	})

	t.Run("empty prefix and suffix", func(t *testing.T) {
		var config Config
		err := NewAffixedEnvFeeder("", "").Feed(&config)
		if !errors.Is(err, ErrEnvEmptyPrefixAndSuffix) {
			t.Fatalf("Expected ErrEnvEmptyPrefixAndSuffix, got %v", err)
		}
	})

	t.Run("invalid structure", func(t *testing.T) {
		err := NewAffixedEnvFeeder("RTV", "").Feed("not a struct pointer")
		if !errors.Is(err, ErrEnvInvalidStructure) {
			t.Fatalf("Expected ErrEnvInvalidStructure, got %v", err)
		}
	})
}
