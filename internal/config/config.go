package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	App struct {
		// Public base URL used for call-to-action links in emails
		BaseURL string `yaml:"base_url"`
	} `yaml:"app"`

	Email EmailConfig `yaml:"email"`

	AI AIConfig `yaml:"ai"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"`
	} `yaml:"jwt"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	OpenAIModel     string `yaml:"openai_model"`
	GroqKey         string `yaml:"groq_key"`
	GroqModel       string `yaml:"groq_model"`
	AssemblyAIKey   string `yaml:"assemblyai_key"`
	MaxTokens       int    `yaml:"max_tokens"`
	GenTimeoutSec   int    `yaml:"generation_timeout_sec"`
	TransTimeoutSec int    `yaml:"transcription_timeout_sec"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Test mode: configuration comes from environment variables
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.App.BaseURL = "http://localhost:3000"
	cfg.Email.SMTPHost = ""
	cfg.Email.FromEmail = "noreply@aiprojecthub.com"
	cfg.Email.FromName = "AI ProjectHub"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.AI.OpenAIModel == "" {
		cfg.AI.OpenAIModel = "gpt-4-turbo-preview"
	}
	if cfg.AI.GroqModel == "" {
		cfg.AI.GroqModel = "llama3-8b-8192"
	}
	if cfg.AI.MaxTokens <= 0 {
		cfg.AI.MaxTokens = 4000
	}
	if cfg.AI.GenTimeoutSec <= 0 {
		cfg.AI.GenTimeoutSec = 30
	}
	if cfg.AI.TransTimeoutSec <= 0 {
		cfg.AI.TransTimeoutSec = 60
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://localhost:3000"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
