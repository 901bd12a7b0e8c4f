package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Search  Search  `mapstructure:"search"`
	Collect Collect `mapstructure:"collect"`
	Store   Store   `mapstructure:"store"`
	TTS     TTS     `mapstructure:"tts"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"` // IANA name used to derive "today"
}

// AI holds LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// Search holds article listing provider configuration
type Search struct {
	Provider string            `mapstructure:"provider"` // "deepsearch", "rss" or "mock"
	BaseURL  string            `mapstructure:"base_url"`
	APIKey   string            `mapstructure:"api_key"`
	PageSize int               `mapstructure:"page_size"` // Overfetch size per page
	MaxPages int               `mapstructure:"max_pages"`
	Timeout  string            `mapstructure:"timeout"`
	Feeds    map[string]string `mapstructure:"feeds"` // category key -> feed URL (rss provider)
}

// Collect holds article collection and pipeline tuning parameters
type Collect struct {
	TargetCount        int     `mapstructure:"target_count"`          // Articles per category per day
	MinValidArticles   int     `mapstructure:"min_valid_articles"`    // Floor below which a category fails
	MinContentLength   int     `mapstructure:"min_content_length"`    // Minimum body length in chars
	BodyCap            int     `mapstructure:"body_cap"`              // Body cap applied before clustering
	FetchTimeout       string  `mapstructure:"fetch_timeout"`         // Per-article HTTP fetch timeout
	ArticleThreshold   float64 `mapstructure:"article_threshold"`     // First-pass cluster threshold
	SummaryThreshold   float64 `mapstructure:"summary_threshold"`     // Second-pass cluster threshold
	MaxWorkers         int     `mapstructure:"max_workers"`           // Concurrent category runs
	ScriptMinLength    int     `mapstructure:"script_min_length"`     // Below this the run fails
	ScriptTargetMin    int     `mapstructure:"script_target_min"`     // Narration length window
	ScriptTargetMax    int     `mapstructure:"script_target_max"`
	SecondPassMinCount int     `mapstructure:"second_pass_min_count"` // Summaries needed to re-cluster
}

// Store holds durable store configuration
type Store struct {
	DataDir string `mapstructure:"data_dir"`
}

// TTS holds speech synthesis configuration
type TTS struct {
	Provider string `mapstructure:"provider"` // "elevenlabs" or "mock"
	APIKey   string `mapstructure:"api_key"`
	VoiceID  string `mapstructure:"voice_id"`
	AudioDir string `mapstructure:"audio_dir"`
}

var globalConfig *Config

// Load reads configuration from the given file (or the default search path),
// environment variables and a local .env file, in that precedence order.
func Load(configFile string) (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newswave")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.timezone", "Asia/Seoul")

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.gemini.embedding_model", "gemini-embedding-001")

	viper.SetDefault("search.provider", "deepsearch")
	viper.SetDefault("search.base_url", "https://api-v2.deepsearch.com/v1")
	viper.SetDefault("search.page_size", 60)
	viper.SetDefault("search.max_pages", 3)
	viper.SetDefault("search.timeout", "15s")

	viper.SetDefault("collect.target_count", 30)
	viper.SetDefault("collect.min_valid_articles", 5)
	viper.SetDefault("collect.min_content_length", 300)
	viper.SetDefault("collect.body_cap", 1500)
	viper.SetDefault("collect.fetch_timeout", "10s")
	viper.SetDefault("collect.article_threshold", 0.80)
	viper.SetDefault("collect.summary_threshold", 0.75)
	viper.SetDefault("collect.max_workers", 6)
	viper.SetDefault("collect.script_min_length", 500)
	viper.SetDefault("collect.script_target_min", 1800)
	viper.SetDefault("collect.script_target_max", 2200)
	viper.SetDefault("collect.second_pass_min_count", 5)

	viper.SetDefault("store.data_dir", ".newswave")

	viper.SetDefault("tts.provider", "mock")
	viper.SetDefault("tts.audio_dir", "audio")
}

// bindEnvironmentVariables maps well-known environment variables onto config keys
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY"})
	bindEnvKeys("search.api_key", []string{"DEEPSEARCH_API_KEY"})
	bindEnvKeys("tts.api_key", []string{"ELEVENLABS_API_KEY"})
	bindEnvKeys("app.log_level", []string{"NEWSWAVE_LOG_LEVEL"})
	bindEnvKeys("store.data_dir", []string{"NEWSWAVE_DATA_DIR"})
}

func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig normalizes values after unmarshaling
func postProcessConfig(config *Config) error {
	config.Store.DataDir = expandPath(config.Store.DataDir)
	config.TTS.AudioDir = expandPath(config.TTS.AudioDir)

	if config.Collect.MinValidArticles > config.Collect.TargetCount {
		return fmt.Errorf("collect.min_valid_articles (%d) exceeds collect.target_count (%d)",
			config.Collect.MinValidArticles, config.Collect.TargetCount)
	}
	if config.Collect.ScriptTargetMin >= config.Collect.ScriptTargetMax {
		return fmt.Errorf("collect.script_target_min must be below collect.script_target_max")
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Convenience accessors

func GetApp() App         { return Get().App }
func GetAI() AI           { return Get().AI }
func GetSearch() Search   { return Get().Search }
func GetCollect() Collect { return Get().Collect }
func GetStore() Store     { return Get().Store }
func GetTTS() TTS         { return Get().TTS }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
