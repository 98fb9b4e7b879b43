package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/schema"
	"github.com/tuberank/tuberank/internal/genai/driver"
	"github.com/tuberank/tuberank/internal/genai/prompt"
)

const (
	// DefaultModel is used when the config does not name one.
	DefaultModel = "gemini-2.5-flash"

	defaultTimeout = 60 * time.Second
	maxTimeout     = 5 * time.Minute
)

// Fixed per-operation sampling temperatures. Title regeneration runs hotter
// for variety; performance analysis runs cooler for factual extraction.
const (
	temperatureDefault     = 0.7
	temperatureTitles      = 0.8
	temperaturePerformance = 0.5
)

// Service coordinates prompt rendering, contract construction, and driver
// execution for the generation flows.
type Service struct {
	Driver  driver.Driver
	Model   string
	Prompts prompt.Registry
	Timeout time.Duration
}

// GenerateSEO produces the full SEO package for a video idea.
func (s *Service) GenerateSEO(ctx context.Context, req SEORequest) (*SEOResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, errors.New("topic is required")
	}

	raw, err := s.completeStructured(ctx, prompt.SlugSEO, seoVars(req), SEOContract(), temperatureDefault)
	if err != nil {
		return nil, err
	}

	var result SEOResult
	if err := decodeValidated(raw, SEOContract(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegenerateTitles produces a fresh title set for the same video idea.
func (s *Service) RegenerateTitles(ctx context.Context, req SEORequest) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, errors.New("topic is required")
	}

	raw, err := s.completeStructured(ctx, prompt.SlugTitles, seoVars(req), TitlesContract(), temperatureTitles)
	if err != nil {
		return nil, err
	}

	var result struct {
		Titles []string `json:"titles"`
	}
	if err := decodeValidated(raw, TitlesContract(), &result); err != nil {
		return nil, err
	}
	return result.Titles, nil
}

// RegenerateDescription produces a fresh description for the same video idea.
func (s *Service) RegenerateDescription(ctx context.Context, req SEORequest) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Topic) == "" {
		return "", errors.New("topic is required")
	}

	raw, err := s.completeStructured(ctx, prompt.SlugDescription, seoVars(req), DescriptionContract(), temperatureDefault)
	if err != nil {
		return "", err
	}

	var result struct {
		Description string `json:"description"`
	}
	if err := decodeValidated(raw, DescriptionContract(), &result); err != nil {
		return "", err
	}
	return result.Description, nil
}

// GenerateMarketing produces the marketing campaign for a product or service.
func (s *Service) GenerateMarketing(ctx context.Context, req MarketingRequest) (*MarketingResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, errors.New("product name is required")
	}

	vars := map[string]string{
		"productName": req.ProductName,
		"audience":    req.Audience,
		"language":    req.Language,
	}
	raw, err := s.completeStructured(ctx, prompt.SlugMarketing, vars, MarketingContract(), temperatureDefault)
	if err != nil {
		return nil, err
	}

	var result MarketingResult
	if err := decodeValidated(raw, MarketingContract(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzePerformance runs the search-grounded performance flow and extracts
// the labeled fields from the free-text reply.
func (s *Service) AnalyzePerformance(ctx context.Context, req PerformanceRequest) (*PerformanceResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, errors.New("url is required")
	}

	promptDef, err := s.Prompts.Get(prompt.SlugPerformance)
	if err != nil {
		return nil, err
	}
	instruction, err := promptDef.Render(map[string]string{"url": req.URL})
	if err != nil {
		return nil, err
	}

	temperature := temperaturePerformance
	resp, err := s.complete(ctx, &driver.Request{
		Model:       s.model(),
		Instruction: instruction,
		Temperature: &temperature,
		UseSearch:   true,
		PromptSlug:  promptDef.Config.Slug,
	})
	if err != nil {
		return nil, err
	}

	result := ExtractPerformance(resp.Text)
	return &result, nil
}

func (s *Service) ready() error {
	if s == nil || s.Driver == nil {
		return errors.New("generation driver not configured")
	}
	if s.Prompts == nil {
		return errors.New("prompt registry not configured")
	}
	return nil
}

func (s *Service) model() string {
	if strings.TrimSpace(s.Model) == "" {
		return DefaultModel
	}
	return s.Model
}

func seoVars(req SEORequest) map[string]string {
	return map[string]string{
		"topic":    req.Topic,
		"category": req.Category,
		"audience": req.Audience,
		"language": req.Language,
	}
}

func (s *Service) completeStructured(ctx context.Context, slug string, vars map[string]string, contract Contract, temperature float64) (string, error) {
	promptDef, err := s.Prompts.Get(slug)
	if err != nil {
		return "", err
	}
	instruction, err := promptDef.Render(vars)
	if err != nil {
		return "", err
	}

	resp, err := s.complete(ctx, &driver.Request{
		Model:          s.model(),
		Instruction:    instruction,
		ResponseSchema: contract.ResponseSchema(),
		Temperature:    &temperature,
		PromptSlug:     promptDef.Config.Slug,
	})
	if err != nil {
		return "", err
	}

	raw := strings.TrimSpace(resp.Text)
	if raw == "" {
		return "", &driver.ProviderError{Provider: s.Driver.Name(), Message: "empty response content", PromptSlug: promptDef.Config.Slug}
	}
	return raw, nil
}

func (s *Service) complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	duration := s.Timeout
	if duration <= 0 {
		duration = defaultTimeout
	}
	if duration > maxTimeout {
		duration = maxTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	return s.Driver.Complete(ctx, req)
}

// decodeValidated deserializes raw into out and validates the payload
// against the contract. Either failure yields a MalformedResponseError
// carrying the raw payload; out is never partially trusted on error.
func decodeValidated(raw string, contract Contract, out any) error {
	payload := []byte(raw)
	if err := validateAgainstContract(contract, payload); err != nil {
		return &MalformedResponseError{Err: err, Raw: json.RawMessage(raw)}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &MalformedResponseError{Err: err, Raw: json.RawMessage(raw)}
	}
	return nil
}

func validateAgainstContract(contract Contract, payload []byte) error {
	schemaBytes, err := json.Marshal(contract.ValidationSchema())
	if err != nil {
		return fmt.Errorf("encode response schema: %w", err)
	}
	validator, err := schema.NewValidator(schemaBytes)
	if err != nil {
		return fmt.Errorf("compile response schema: %w", err)
	}
	diagnostics, err := validator.ValidateJSON(payload)
	if err != nil {
		return err
	}
	if len(diagnostics) > 0 {
		return fmt.Errorf("response schema validation failed: %s", diagnostics[0].Message)
	}
	return nil
}
