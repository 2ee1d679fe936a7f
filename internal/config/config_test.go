package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Groq: GroqConfig{
					APIKey: "gsk_test",
				},
				Paths: PathsConfig{
					Uploads: "data/uploads",
					Data:    "data",
				},
			},
			wantErr: false,
		},
		{
			name: "missing groq api key",
			config: Config{
				Paths: PathsConfig{
					Uploads: "data/uploads",
					Data:    "data",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Groq: GroqConfig{
					APIKey: "gsk_test",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Groq:  GroqConfig{APIKey: "gsk_test"},
		Paths: PathsConfig{Uploads: "data/uploads", Data: "data"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ProcessTimeout != 5*time.Minute {
		t.Errorf("Server.ProcessTimeout = %v, want 5m", cfg.Server.ProcessTimeout)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Groq.TextModel != "llama-3.3-70b-versatile" {
		t.Errorf("Groq.TextModel = %q", cfg.Groq.TextModel)
	}
	if cfg.Groq.AudioModel != "whisper-large-v3" {
		t.Errorf("Groq.AudioModel = %q", cfg.Groq.AudioModel)
	}
	if cfg.FFmpeg.BinaryPath != "ffmpeg" {
		t.Errorf("FFmpeg.BinaryPath = %q, want ffmpeg", cfg.FFmpeg.BinaryPath)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("Performance.MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
groq:
  api_key: gsk_test
paths:
  uploads: data/uploads
  data: data
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() with missing file should fail")
	}
}
