package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/logger"
)

// geminiClient is the primary multimodal media provider. It uploads the
// prepared audio inline and rotates through the configured API keys on
// quota errors. One client is shared by all concurrent requests, so the
// rotation cursor is guarded.
type geminiClient struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

func newGeminiClient(cfg config.GeminiConfig, log logger.Logger) *geminiClient {
	return &geminiClient{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		logger:  log,
	}
}

func (g *geminiClient) Available() bool {
	return len(g.apiKeys) > 0
}

// Analyze sends the prompt plus the file's bytes inline and returns the raw
// response text.
func (g *geminiClient) Analyze(ctx context.Context, prompt, path, mimeType string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read media file: %w", err)
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		parts := []*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}
		contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

		result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiClient) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *geminiClient) rotateKey() {
	g.mu.Lock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	g.mu.Unlock()
}
