package pais

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration
type Config struct {
	// Predictor config
	Predictor *PredictorConfig `mapstructure:"predictor"`

	// Redis config
	Redis *RedisConfig `mapstructure:"redis"`

	// Circuit breaker config
	CircuitBreaker *CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

func (c *Config) Validate() error {
	if c.Predictor == nil || c.Redis == nil || c.CircuitBreaker == nil {
		return ErrConfigInvalid.WithDetails("missing configuration section")
	}

	if c.Predictor.Window < 0 {
		return ErrConfigInvalid.WithDetails("window cannot be negative")
	}
	if c.Predictor.DefaultCount < 1 || c.Predictor.DefaultCount > MaxPredictionCount {
		return ErrConfigInvalid.WithDetails(
			fmt.Sprintf("default count must be between 1 and %d", MaxPredictionCount))
	}

	if c.Redis.Addr == "" {
		return ErrConfigInvalid.WithDetails("redis address is required")
	}
	if c.Redis.PoolSize <= 0 {
		return ErrConfigInvalid.WithDetails("redis pool size must be positive")
	}

	if c.CircuitBreaker.FailureRatio < 0 || c.CircuitBreaker.FailureRatio > 1 {
		return ErrConfigInvalid.WithDetails("circuit breaker failure ratio must be within [0,1]")
	}

	return nil
}

// PredictorConfig holds the engine parameters
type PredictorConfig struct {
	// Window restricts analysis to the most recent N draws; 0 means full history
	Window int `mapstructure:"window"`

	// DefaultCount is the number of predictions per request when unspecified
	DefaultCount int `mapstructure:"default_count"`

	// Seed fixes the RNG for reproducible output; 0 selects the secure source
	Seed int64 `mapstructure:"seed"`
}

// DefaultPredictorConfig returns the default engine parameters
func DefaultPredictorConfig() *PredictorConfig {
	return &PredictorConfig{
		Window:       DefaultWindow,
		DefaultCount: DefaultPredictionCount,
		Seed:         0,
	}
}

// RNG returns the random source selected by the config
func (pc *PredictorConfig) RNG() RNG {
	if pc.Seed != 0 {
		return NewSeededRNG(pc.Seed)
	}
	return NewSecureRNG()
}

// RedisConfig holds the Redis connection parameters
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
	MaxRetries   int `mapstructure:"max_retries"`

	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

// DefaultRedisConfig returns the default Redis configuration
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:         DefaultRedisAddr,
		Password:     DefaultRedisPassword,
		DB:           DefaultRedisDB,
		PoolSize:     DefaultRedisPoolSize,
		MinIdleConns: DefaultRedisMinIdleConns,
		MaxRetries:   DefaultRedisMaxRetries,
		DialTimeout:  DefaultRedisDialTimeout,
		ReadTimeout:  DefaultRedisReadTimeout,
		WriteTimeout: DefaultRedisWriteTimeout,
		PoolTimeout:  DefaultRedisPoolTimeout,
	}
}

// CircuitBreakerConfig holds the repository breaker parameters
type CircuitBreakerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Name          string        `mapstructure:"name"`
	MaxRequests   uint32        `mapstructure:"max_requests"`
	Interval      time.Duration `mapstructure:"interval"`
	Timeout       time.Duration `mapstructure:"timeout"`
	FailureRatio  float64       `mapstructure:"failure_ratio"`
	MinRequests   uint32        `mapstructure:"min_requests"`
	OnStateChange bool          `mapstructure:"on_state_change"`
}

// DefaultCircuitBreakerConfig returns the default breaker configuration
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Enabled:       true,
		Name:          DefaultCircuitBreakerName,
		MaxRequests:   DefaultCircuitBreakerMaxRequests,
		Interval:      DefaultCircuitBreakerInterval,
		Timeout:       DefaultCircuitBreakerTimeout,
		FailureRatio:  DefaultCircuitBreakerFailureRatio,
		MinRequests:   DefaultCircuitBreakerMinRequests,
		OnStateChange: DefaultCircuitBreakerOnStateChange,
	}
}

// ConfigManager loads and watches the configuration
type ConfigManager struct {
	viper  *viper.Viper
	config *Config
}

// NewConfigManager creates a config manager reading config.yaml from the
// usual locations, with PAIS_* environment overrides
func NewConfigManager() *ConfigManager {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pais")
	v.AddConfigPath("$HOME/.pais")

	v.SetEnvPrefix("PAIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &ConfigManager{viper: v}
}

// NewDefaultConfigManager creates a config manager preloaded with defaults
func NewDefaultConfigManager() *ConfigManager {
	cm := NewConfigManager()
	cm.setDefaults()

	cm.config = &Config{
		Predictor:      DefaultPredictorConfig(),
		Redis:          DefaultRedisConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig(),
	}
	return cm
}

// LoadConfig reads, parses and validates the configuration
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	cm.setDefaults()

	if err := cm.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file means defaults
	}

	config := &Config{}
	if err := cm.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cm.config = config
	return config, nil
}

// setDefaults installs the default values
func (cm *ConfigManager) setDefaults() {
	cm.viper.SetDefault("predictor.window", DefaultWindow)
	cm.viper.SetDefault("predictor.default_count", DefaultPredictionCount)
	cm.viper.SetDefault("predictor.seed", 0)

	cm.viper.SetDefault("redis.addr", DefaultRedisAddr)
	cm.viper.SetDefault("redis.password", DefaultRedisPassword)
	cm.viper.SetDefault("redis.db", DefaultRedisDB)
	cm.viper.SetDefault("redis.pool_size", DefaultRedisPoolSize)
	cm.viper.SetDefault("redis.min_idle_conns", DefaultRedisMinIdleConns)
	cm.viper.SetDefault("redis.max_retries", DefaultRedisMaxRetries)
	cm.viper.SetDefault("redis.dial_timeout", "5s")
	cm.viper.SetDefault("redis.read_timeout", "3s")
	cm.viper.SetDefault("redis.write_timeout", "3s")
	cm.viper.SetDefault("redis.pool_timeout", "4s")

	cm.viper.SetDefault("circuit_breaker.enabled", true)
	cm.viper.SetDefault("circuit_breaker.name", DefaultCircuitBreakerName)
	cm.viper.SetDefault("circuit_breaker.max_requests", DefaultCircuitBreakerMaxRequests)
	cm.viper.SetDefault("circuit_breaker.interval", "60s")
	cm.viper.SetDefault("circuit_breaker.timeout", "30s")
	cm.viper.SetDefault("circuit_breaker.failure_ratio", DefaultCircuitBreakerFailureRatio)
	cm.viper.SetDefault("circuit_breaker.min_requests", DefaultCircuitBreakerMinRequests)
	cm.viper.SetDefault("circuit_breaker.on_state_change", DefaultCircuitBreakerOnStateChange)
}

// WatchConfig reloads the configuration on file changes
func (cm *ConfigManager) WatchConfig(callback func(*Config)) error {
	cm.viper.WatchConfig()
	cm.viper.OnConfigChange(func(e fsnotify.Event) {
		config := &Config{}
		if err := cm.viper.Unmarshal(config); err != nil {
			// Keep serving the previous config
			return
		}

		if err := config.Validate(); err != nil {
			return
		}

		cm.config = config
		if callback != nil {
			callback(config)
		}
	})

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config { return cm.config }

// ReloadConfig re-reads the configuration from disk
func (cm *ConfigManager) ReloadConfig() (*Config, error) { return cm.LoadConfig() }

// NewRedisClientFromConfig creates a Redis client from the config
func NewRedisClientFromConfig(config *RedisConfig) *redis.Client {
	if config == nil {
		config = DefaultRedisConfig()
	}

	return redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
	})
}
