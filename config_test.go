package rtverify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/rtverify"
	"github.com/GoCodeAlone/rtverify/feeders"
)

func TestDefaultConfig(t *testing.T) {
	cfg := rtverify.DefaultConfig()
	assert.False(t, cfg.Aggregate)
	assert.True(t, cfg.EmitEvents)
	assert.Equal(t, "rtverify", cfg.EventSource)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RTVERIFY_AGGREGATE", "true")
	t.Setenv("RTVERIFY_EVENT_SOURCE", "firmware-ci")

	cfg, err := rtverify.LoadConfig(feeders.NewAffixedEnvFeeder("rtverify", ""))
	require.NoError(t, err)
	assert.True(t, cfg.Aggregate)
	assert.True(t, cfg.EmitEvents, "unset variables keep their defaults")
	assert.Equal(t, "firmware-ci", cfg.EventSource)
}

func TestLoadConfig_EnvOverridesTrueDefault(t *testing.T) {
	t.Setenv("RTVERIFY_EMIT_EVENTS", "false")

	cfg, err := rtverify.LoadConfig(feeders.NewAffixedEnvFeeder("RTVERIFY", ""))
	require.NoError(t, err)
	assert.False(t, cfg.EmitEvents)
}

func TestLoadConfig_BadValue(t *testing.T) {
	t.Setenv("RTVERIFY_AGGREGATE", "sometimes")

	_, err := rtverify.LoadConfig(feeders.NewAffixedEnvFeeder("RTVERIFY", ""))
	assert.Error(t, err)
}

func TestLoadConfig_NoFeeders(t *testing.T) {
	cfg, err := rtverify.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, rtverify.DefaultConfig(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &rtverify.Config{}
	assert.ErrorIs(t, cfg.Validate(), rtverify.ErrInvalidEventSource)
}

func TestProcessConfigDefaults_Errors(t *testing.T) {
	assert.ErrorIs(t, rtverify.ProcessConfigDefaults(nil), rtverify.ErrConfigNil)
	assert.ErrorIs(t, rtverify.ProcessConfigDefaults(rtverify.Config{}), rtverify.ErrConfigNotPointer)

	n := 3
	assert.ErrorIs(t, rtverify.ProcessConfigDefaults(&n), rtverify.ErrConfigNotStruct)

	type withSlice struct {
		Tags []string `default:"a,b"`
	}
	assert.ErrorIs(t, rtverify.ProcessConfigDefaults(&withSlice{}), rtverify.ErrUnsupportedDefaults)

	type withInt struct {
		Level int `default:"4"`
		Skip  int `default:"9"`
	}
	cfg := &withInt{Skip: 1}
	require.NoError(t, rtverify.ProcessConfigDefaults(cfg))
	assert.Equal(t, 4, cfg.Level)
	assert.Equal(t, 1, cfg.Skip)
}
