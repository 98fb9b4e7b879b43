package cmd

import (
	"errors"
	"strings"

	"github.com/tuberank/tuberank/internal/config"
	"github.com/tuberank/tuberank/internal/genai"
	"github.com/tuberank/tuberank/internal/genai/driver/gemini"
	"github.com/tuberank/tuberank/internal/genai/prompt"
	"github.com/tuberank/tuberank/internal/observability"
)

// buildGenerationService assembles the prompt registry and Gemini driver
// from config. A missing API key is tolerated here; the driver reports it
// on the first generation call.
func buildGenerationService(cfg *config.Config) (*genai.Service, error) {
	if cfg == nil {
		return nil, errors.New("config not loaded")
	}

	registry, err := prompt.DefaultRegistry(cfg.GenAI.PromptsDir)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.GenAI.APIKey) == "" && observability.CLILogger != nil {
		observability.CLILogger.Warn("Gemini API key not configured; generation calls will fail until genai.api_key or GEMINI_API_KEY is set")
	}

	return &genai.Service{
		Driver:  gemini.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.APIKey),
		Model:   cfg.GenAI.Model,
		Prompts: registry,
		Timeout: cfg.GenAI.Timeout,
	}, nil
}

// loadConfig decodes the merged viper state into the typed config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
