// Package gemini implements the recognition backends on the Gemini API:
// document-structure reads, handwriting re-reads, and the coarse layout
// probe are all prompt variants over the same multimodal model.
package gemini

import (
	"context"
	"encoding/json"
	"sync"

	"google.golang.org/genai"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/logging"
	"github.com/fairwaylab/scorelens/pkg/reconciler"
	"github.com/fairwaylab/scorelens/pkg/structure"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Config configures the Gemini client.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model overrides DefaultModel.
	Model string
}

// Client talks to the Gemini API. It implements the reconciler's
// StructureReader, HandwritingReader, and LayoutClassifier interfaces.
type Client struct {
	cfg Config

	// GenAI client - reused across calls once created
	genaiClient *genai.Client
	mu          sync.Mutex
}

// Compile-time interface checks.
var (
	_ reconciler.StructureReader   = (*Client)(nil)
	_ reconciler.HandwritingReader = (*Client)(nil)
	_ reconciler.LayoutClassifier  = (*Client)(nil)
)

// NewClient creates a Gemini client. The API key is validated lazily on
// first use so construction never needs the network.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{cfg: cfg}
}

// Close releases the underlying client reference.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.genaiClient = nil
	return nil
}

func (c *Client) getOrCreateGenAIClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}
	if c.cfg.APIKey == "" {
		return nil, &errors.AuthenticationError{
			Backend: "gemini",
			Method:  "api_key",
			Message: "API key required for the Gemini API",
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.cfg.APIKey,
	})
	if err != nil {
		return nil, errors.WrapAPI("gemini", 0, err)
	}
	c.genaiClient = client
	return client, nil
}

// generate sends one prompt-plus-image request and returns the raw text
// of the first candidate. Responses are requested as JSON but arrive as
// text; parsing stays lenient downstream.
func (c *Client) generate(ctx context.Context, prompt string, img reconciler.Image) (string, error) {
	client, err := c.getOrCreateGenAIClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(img.Data, img.MIME),
		}, genai.RoleUser),
	}
	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", errors.WrapAPI("gemini", 0, err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.NewAPIError("gemini", 0, "empty response from model")
	}
	return text, nil
}

// ReadGrid performs the document-structure read: every visible text
// cell, row by row, without interpretation.
func (c *Client) ReadGrid(ctx context.Context, img reconciler.Image) (*structure.Grid, error) {
	ctx = logging.WithBackend(ctx, "gemini")
	text, err := c.generate(ctx, gridPrompt, img)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Rows [][]string `json:"rows"`
	}
	if err := json.Unmarshal(ExtractJSON(text), &payload); err != nil {
		return nil, errors.NewParseError("json", "gemini", "grid payload did not decode", err)
	}
	if len(payload.Rows) == 0 {
		return nil, errors.NewParseError("json", "gemini", "grid payload contained no rows", nil)
	}

	logging.Ctx(ctx).Debug().Int("rows", len(payload.Rows)).Msg("structure grid received")
	return &structure.Grid{Rows: payload.Rows}, nil
}

// ReadScores performs the handwriting-focused re-read, steering the
// model with whatever structural context is already known. The payload
// is schema-validated before use; a model that free-styles its output
// fails the strategy rather than poisoning the merge.
func (c *Client) ReadScores(ctx context.Context, img reconciler.Image, hint *reconciler.Hint) (*reconciler.HandwritingCard, error) {
	ctx = logging.WithBackend(ctx, "gemini")
	text, err := c.generate(ctx, scoresPrompt(hint), img)
	if err != nil {
		return nil, err
	}

	raw := ExtractJSON(text)
	if err := validateScoresPayload(raw); err != nil {
		return nil, err
	}

	var card reconciler.HandwritingCard
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, errors.NewParseError("json", "gemini", "handwriting payload did not decode", err)
	}

	logging.Ctx(ctx).Debug().Int("players", len(card.Players)).Msg("handwriting card received")
	return &card, nil
}

// Classify runs the cheap layout probe. Callers treat errors and low
// confidence as "use defaults", so this method reports what it saw and
// nothing more.
func (c *Client) Classify(ctx context.Context, img reconciler.Image) (*layout.Analysis, error) {
	ctx = logging.WithBackend(ctx, "gemini")
	text, err := c.generate(ctx, layoutPrompt, img)
	if err != nil {
		return nil, err
	}

	var analysis layout.Analysis
	if err := json.Unmarshal(ExtractJSON(text), &analysis); err != nil {
		return nil, errors.NewParseError("json", "gemini", "layout payload did not decode", err)
	}
	return &analysis, nil
}
