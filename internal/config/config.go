package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log           LogConfig           `mapstructure:"log"`
	Carrefour     CarrefourConfig     `mapstructure:"carrefour"`
	OpenFoodFacts OpenFoodFactsConfig `mapstructure:"openfoodfacts"`
	Gemini        GeminiConfig        `mapstructure:"gemini"`
	Matcher       MatcherConfig       `mapstructure:"matcher"`
	State         StateConfig         `mapstructure:"state"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CarrefourConfig holds the Carrefour scraping configuration
type CarrefourConfig struct {
	CategoryURL          string   `mapstructure:"category_url"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	UserAgents           []string `mapstructure:"user_agents"`
	CatalogFile          string   `mapstructure:"catalog_file"`
	ImagesDir            string   `mapstructure:"images_dir"`
	DataDir              string   `mapstructure:"data_dir"`
}

// OpenFoodFactsConfig holds the Open Food Facts scraping configuration
type OpenFoodFactsConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	DataDir              string `mapstructure:"data_dir"`
}

// GeminiConfig holds the Gemini extraction configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// MatcherConfig holds the matching pipeline file locations
type MatcherConfig struct {
	ProductInfoFile string `mapstructure:"product_info_file"`
	CatalogFile     string `mapstructure:"catalog_file"`
	OutputFile      string `mapstructure:"output_file"`
}

// StateConfig holds progress tracking configuration
type StateConfig struct {
	File string `mapstructure:"file"`
}

// Load loads configuration from config.yaml with environment variable
// overrides. A missing config file is fine; defaults and env vars apply.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("log.level", "info")

	viper.SetDefault("carrefour.category_url",
		"https://www.carrefour.it/spesa-online/condimenti-e-conserve/tonno-e-pesce-in-scatola/tonno-sott-olio/")
	viper.SetDefault("carrefour.timeout", 30)
	viper.SetDefault("carrefour.max_retries", 3)
	viper.SetDefault("carrefour.max_requests_per_second", 1)
	viper.SetDefault("carrefour.catalog_file", "carrefour/products.json")
	viper.SetDefault("carrefour.images_dir", "carrefour/images")
	viper.SetDefault("carrefour.data_dir", "carrefour")

	viper.SetDefault("openfoodfacts.base_url", "https://it.openfoodfacts.org")
	viper.SetDefault("openfoodfacts.timeout", 30)
	viper.SetDefault("openfoodfacts.max_requests_per_second", 1)
	viper.SetDefault("openfoodfacts.data_dir", "off")

	// Registering the key lets AutomaticEnv pick up GEMINI_API_KEY without
	// a config file naming it.
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.timeout", 120)

	viper.SetDefault("matcher.product_info_file", "carrefour/products_info.json")
	viper.SetDefault("matcher.catalog_file", "carrefour/products.json")
	viper.SetDefault("matcher.output_file", "carrefour/matched_products.json")

	viper.SetDefault("state.file", "carrefour/processed.json")
}
