package pais

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigs(t *testing.T) {
	t.Run("predictor defaults", func(t *testing.T) {
		config := DefaultPredictorConfig()
		assert.Equal(t, DefaultWindow, config.Window)
		assert.Equal(t, DefaultPredictionCount, config.DefaultCount)
		assert.Zero(t, config.Seed)
	})

	t.Run("redis defaults", func(t *testing.T) {
		config := DefaultRedisConfig()
		assert.Equal(t, "localhost:6379", config.Addr)
		assert.Equal(t, 50, config.PoolSize)
		assert.Equal(t, 5*time.Second, config.DialTimeout)
	})

	t.Run("circuit breaker defaults", func(t *testing.T) {
		config := DefaultCircuitBreakerConfig()
		assert.True(t, config.Enabled)
		assert.Equal(t, DefaultCircuitBreakerName, config.Name)
		assert.InDelta(t, 0.6, config.FailureRatio, 1e-9)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Predictor:      DefaultPredictorConfig(),
			Redis:          DefaultRedisConfig(),
			CircuitBreaker: DefaultCircuitBreakerConfig(),
		}
	}

	t.Run("defaults validate", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing section", func(c *Config) { c.Redis = nil }},
		{"negative window", func(c *Config) { c.Predictor.Window = -1 }},
		{"zero default count", func(c *Config) { c.Predictor.DefaultCount = 0 }},
		{"default count above maximum", func(c *Config) { c.Predictor.DefaultCount = MaxPredictionCount + 1 }},
		{"empty redis address", func(c *Config) { c.Redis.Addr = "" }},
		{"non-positive pool size", func(c *Config) { c.Redis.PoolSize = 0 }},
		{"failure ratio above one", func(c *Config) { c.CircuitBreaker.FailureRatio = 1.5 }},
		{"negative failure ratio", func(c *Config) { c.CircuitBreaker.FailureRatio = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			assert.ErrorIs(t, config.Validate(), ErrConfigInvalid)
		})
	}
}

func TestPredictorConfig_RNG(t *testing.T) {
	t.Run("non-zero seed selects the deterministic source", func(t *testing.T) {
		config := &PredictorConfig{Seed: 42}
		_, ok := config.RNG().(*SeededRNG)
		assert.True(t, ok)
	})

	t.Run("zero seed selects the secure source", func(t *testing.T) {
		config := &PredictorConfig{}
		_, ok := config.RNG().(*SecureRNG)
		assert.True(t, ok)
	})
}

func TestConfigManager_LoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		dir := t.TempDir()
		restore := chdir(t, dir)
		defer restore()

		config, err := NewConfigManager().LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultWindow, config.Predictor.Window)
		assert.Equal(t, "localhost:6379", config.Redis.Addr)
		assert.True(t, config.CircuitBreaker.Enabled)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		dir := t.TempDir()
		content := `
predictor:
  window: 100
  default_count: 3
  seed: 42
redis:
  addr: "redis.internal:6379"
circuit_breaker:
  enabled: false
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
		restore := chdir(t, dir)
		defer restore()

		cm := NewConfigManager()
		config, err := cm.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 100, config.Predictor.Window)
		assert.Equal(t, 3, config.Predictor.DefaultCount)
		assert.Equal(t, int64(42), config.Predictor.Seed)
		assert.Equal(t, "redis.internal:6379", config.Redis.Addr)
		assert.False(t, config.CircuitBreaker.Enabled)
		assert.Equal(t, DefaultRedisPoolSize, config.Redis.PoolSize, "unset keys keep their defaults")
		assert.Same(t, config, cm.GetConfig())
	})

	t.Run("invalid file values fail validation", func(t *testing.T) {
		dir := t.TempDir()
		content := `
predictor:
  default_count: -1
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
		restore := chdir(t, dir)
		defer restore()

		_, err := NewConfigManager().LoadConfig()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigInvalid)
	})
}

func TestNewDefaultConfigManager(t *testing.T) {
	cm := NewDefaultConfigManager()
	config := cm.GetConfig()
	require.NotNil(t, config)
	assert.NoError(t, config.Validate())
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(previous) }
}
