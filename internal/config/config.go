package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Groq        GroqConfig        `yaml:"groq"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	YtDlp       YtDlpConfig       `yaml:"ytdlp"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Auth        AuthConfig        `yaml:"auth"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ProcessTimeout time.Duration `yaml:"process_timeout"`
}

type PathsConfig struct {
	Uploads  string `yaml:"uploads"`
	Data     string `yaml:"data"`
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type GroqConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	TextModel   string        `yaml:"text_model"`
	VisionModel string        `yaml:"vision_model"`
	AudioModel  string        `yaml:"audio_model"`
	Timeout     time.Duration `yaml:"timeout"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type YtDlpConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type AuthConfig struct {
	// Tokens maps opaque bearer tokens to user ids.
	Tokens map[string]string `yaml:"tokens"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Groq.APIKey == "" {
		return fmt.Errorf("groq.api_key is required")
	}
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Data == "" {
		return fmt.Errorf("paths.data is required")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ProcessTimeout == 0 {
		c.Server.ProcessTimeout = 5 * time.Minute
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.TextModel == "" {
		c.Groq.TextModel = "llama-3.3-70b-versatile"
	}
	if c.Groq.VisionModel == "" {
		c.Groq.VisionModel = "llama-3.2-11b-vision-preview"
	}
	if c.Groq.AudioModel == "" {
		c.Groq.AudioModel = "whisper-large-v3"
	}
	if c.Groq.Timeout == 0 {
		c.Groq.Timeout = 10 * time.Minute
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
