package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Models    ModelsConfig    `yaml:"models" mapstructure:"models"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Answer    AnswerConfig    `yaml:"answer" mapstructure:"answer"`
	Freshness FreshnessConfig `yaml:"freshness" mapstructure:"freshness"`
	Queue     QueueConfig     `yaml:"queue" mapstructure:"queue"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	Secret         string   `yaml:"secret" mapstructure:"secret"`
	RatePerSecond  float64  `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// OpenAIConfig holds OpenAI-compatible chat completion API settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// ModelsConfig selects the generation chain and the classifier model.
type ModelsConfig struct {
	// Chain is the ordered list of model IDs tried for answer generation.
	// Models prefixed "claude" route to Anthropic, everything else to the
	// OpenAI-compatible endpoint.
	Chain []string `yaml:"chain" mapstructure:"chain"`
	// Classifier is the cheap model used for the freshness judgment.
	Classifier string `yaml:"classifier" mapstructure:"classifier"`
}

// SearchConfig holds Google Custom Search settings.
type SearchConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	EngineID string `yaml:"engine_id" mapstructure:"engine_id"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Locale   string `yaml:"locale" mapstructure:"locale"`
	Limit    int    `yaml:"limit" mapstructure:"limit"`
}

// AnswerConfig bounds the answer pipeline.
type AnswerConfig struct {
	MaxQuestionLen      int `yaml:"max_question_len" mapstructure:"max_question_len"`
	MaxContextResults   int `yaml:"max_context_results" mapstructure:"max_context_results"`
	ClassifyTimeoutSecs int `yaml:"classify_timeout_secs" mapstructure:"classify_timeout_secs"`
	SearchTimeoutSecs   int `yaml:"search_timeout_secs" mapstructure:"search_timeout_secs"`
	GenerateTimeoutSecs int `yaml:"generate_timeout_secs" mapstructure:"generate_timeout_secs"`
}

// FreshnessConfig configures the freshness classifier.
type FreshnessConfig struct {
	// KeywordFile optionally points at a YAML file overriding the built-in
	// temporal keyword patterns.
	KeywordFile string `yaml:"keyword_file" mapstructure:"keyword_file"`
}

// QueueConfig configures the robot command queue backend.
type QueueConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // sqlite, postgres, memory
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ClassifyTimeout returns the classifier call budget.
func (a AnswerConfig) ClassifyTimeout() time.Duration {
	return time.Duration(a.ClassifyTimeoutSecs) * time.Second
}

// SearchTimeout returns the web search call budget.
func (a AnswerConfig) SearchTimeout() time.Duration {
	return time.Duration(a.SearchTimeoutSecs) * time.Second
}

// GenerateTimeout returns the per-model generation budget.
func (a AnswerConfig) GenerateTimeout() time.Duration {
	return time.Duration(a.GenerateTimeoutSecs) * time.Second
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEKO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a meaningful default still get an empty one:
	// viper's Unmarshal only sees registered keys, so an unregistered key
	// set purely through the environment would be dropped.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.secret", "")
	v.SetDefault("openai.key", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("search.key", "")
	v.SetDefault("search.engine_id", "")
	v.SetDefault("freshness.keyword_file", "")
	v.SetDefault("server.rate_per_second", 2.0)
	v.SetDefault("server.rate_burst", 5)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("models.chain", []string{"gpt-4o", "gpt-4o-mini", "claude-haiku-4-5-20251001"})
	v.SetDefault("models.classifier", "gpt-4o-mini")
	v.SetDefault("search.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("search.locale", "tr")
	v.SetDefault("search.limit", 5)
	v.SetDefault("answer.max_question_len", 600)
	v.SetDefault("answer.max_context_results", 5)
	v.SetDefault("answer.classify_timeout_secs", 5)
	v.SetDefault("answer.search_timeout_secs", 8)
	v.SetDefault("answer.generate_timeout_secs", 15)
	v.SetDefault("queue.driver", "sqlite")
	v.SetDefault("queue.dsn", "leko.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
