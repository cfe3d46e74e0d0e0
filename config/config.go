package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Completer CompleterConfig `yaml:"completer"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// GatewayConfig holds the HTTP surface settings of the completion gateway.
type GatewayConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
}

// CompleterConfig selects and tunes the upstream completion provider.
// The sampling parameters are configuration constants, not part of the
// gateway wire contract, and may change without breaking clients.
type CompleterConfig struct {
	// Provider is either "openai" or "gemini".
	Provider string `yaml:"provider"`

	OpenAI OpenAIConfig `yaml:"openai"`
	Gemini GeminiConfig `yaml:"gemini"`
}

type OpenAIConfig struct {
	// BaseURL defaults to the public OpenAI endpoint when empty.
	BaseURL         string  `yaml:"base_url"`
	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
}

type GeminiConfig struct {
	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	c.applyDefaults()
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// OpenAIApiKey returns the upstream credential for the OpenAI provider.
// It is a deployment-time secret and never lives in config.yaml.
func OpenAIApiKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// GeminiApiKey returns the upstream credential for the Gemini provider.
func GeminiApiKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func (c *AppConfig) applyDefaults() {
	if c.Gateway.Addr == "" {
		c.Gateway.Addr = ":8080"
	}
	if c.Completer.Provider == "" {
		c.Completer.Provider = "openai"
	}
	if c.Completer.OpenAI.Model == "" {
		c.Completer.OpenAI.Model = "gpt-4.1-2025-04-14"
	}
	if c.Completer.OpenAI.MaxOutputTokens == 0 {
		c.Completer.OpenAI.MaxOutputTokens = 1000
	}
	if c.Completer.OpenAI.Temperature == 0 {
		c.Completer.OpenAI.Temperature = 0.7
	}
	if c.Completer.Gemini.Model == "" {
		c.Completer.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Completer.Gemini.MaxOutputTokens == 0 {
		c.Completer.Gemini.MaxOutputTokens = 1000
	}
	if c.Completer.Gemini.Temperature == 0 {
		c.Completer.Gemini.Temperature = 0.7
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
