package annotation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator is the external text-generation collaborator. The services
// behind it are opaque; only the request/response shapes matter here.
type Generator interface {
	CharacterDescription(ctx context.Context, id string) (string, error)
	CharacterInsights(ctx context.Context, id string) ([]string, error)
	LocationDescription(ctx context.Context, id string) (string, error)
	EvaluateLocation(ctx context.Context, id, description string) (*LocationEvaluation, error)
	Compatibility(ctx context.Context, character1ID, character2ID, locationID string) (*CompatibilityAnalysis, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// HTTPGenerator talks to the generation backend over its JSON API.
type HTTPGenerator struct {
	base   string
	client *http.Client
}

// NewHTTPGenerator creates a generator for the backend at baseURL.
// A nil client gets a default with a generous timeout; generation calls are
// slow.
func NewHTTPGenerator(baseURL string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPGenerator{
		base:   strings.TrimRight(baseURL, "/"),
		client: client,
	}
}

func (g *HTTPGenerator) CharacterDescription(ctx context.Context, id string) (string, error) {
	var out struct {
		Description string `json:"description"`
	}
	path := fmt.Sprintf("/api/character/%s/description", id)
	if err := g.post(ctx, path, nil, &out); err != nil {
		return "", fmt.Errorf("failed to fetch description: %w", err)
	}
	return out.Description, nil
}

func (g *HTTPGenerator) CharacterInsights(ctx context.Context, id string) ([]string, error) {
	var out struct {
		Insights []string `json:"insights"`
	}
	path := fmt.Sprintf("/api/character/%s/insights", id)
	if err := g.post(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch insights: %w", err)
	}
	return out.Insights, nil
}

func (g *HTTPGenerator) LocationDescription(ctx context.Context, id string) (string, error) {
	var out struct {
		Description string `json:"description"`
	}
	path := fmt.Sprintf("/api/location/%s/description", id)
	if err := g.post(ctx, path, nil, &out); err != nil {
		return "", fmt.Errorf("failed to fetch description: %w", err)
	}
	return out.Description, nil
}

func (g *HTTPGenerator) EvaluateLocation(ctx context.Context, id, description string) (*LocationEvaluation, error) {
	body := map[string]string{"description": description}
	var out struct {
		Evaluation LocationEvaluation `json:"evaluation"`
	}
	path := fmt.Sprintf("/api/location/%s/evaluate", id)
	if err := g.post(ctx, path, body, &out); err != nil {
		return nil, fmt.Errorf("failed to evaluate description: %w", err)
	}
	return &out.Evaluation, nil
}

func (g *HTTPGenerator) Compatibility(ctx context.Context, character1ID, character2ID, locationID string) (*CompatibilityAnalysis, error) {
	body := map[string]string{
		"character1Id": character1ID,
		"character2Id": character2ID,
		"locationId":   locationID,
	}
	var out struct {
		Analysis CompatibilityAnalysis `json:"analysis"`
	}
	if err := g.post(ctx, "/api/compatibility", body, &out); err != nil {
		return nil, fmt.Errorf("failed to generate compatibility analysis: %w", err)
	}
	return &out.Analysis, nil
}

func (g *HTTPGenerator) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	body := map[string]any{"query": query, "limit": limit}
	var out struct {
		Results []SearchResult `json:"results"`
	}
	if err := g.post(ctx, "/api/search", body, &out); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return out.Results, nil
}

// post sends a JSON POST and decodes the JSON response into out.
func (g *HTTPGenerator) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Compile-time interface check
var _ Generator = (*HTTPGenerator)(nil)
