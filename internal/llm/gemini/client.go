// Package gemini implements the language-model decision source on Google's
// Gemini API. The model output is advisory; the deterministic validation
// engine downstream corrects it against the rulebook.
package gemini

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/config"
	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
)

const maxAttempts = 3

// Client holds one long-lived Gemini connection configured for deterministic
// JSON output (temperature 0, JSON response MIME type).
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// New dials the Gemini API. The caller owns Close.
func New(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "dial gemini")
	}

	model := client.GenerativeModel(strings.TrimSpace(cfg.Model))
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(rulebookPrompt)},
	}

	return &Client{client: client, model: model, logger: logger}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Decide produces the raw decision for one party. Failures never abort the
// claim: they come back as an ERROR decision the validation engine passes
// through untouched, so one party's failed model call cannot sink its
// siblings.
func (c *Client) Decide(ctx context.Context, bundle models.CaseBundle, partyIndex int) models.RawDecision {
	raw, err := c.decide(ctx, bundle, partyIndex)
	if err != nil {
		c.logger.ErrorContext(ctx, "model decision failed",
			slog.String("claim_id", bundle.ClaimID),
			slog.String("party_id", bundle.Parties[partyIndex].PartyID),
			slog.String("error", err.Error()),
		)
		return models.RawDecision{
			Decision:  models.DecisionError,
			Reasoning: "decision source unavailable: " + domainerrors.MessageOf(err),
		}
	}
	return raw
}

func (c *Client) decide(ctx context.Context, bundle models.CaseBundle, partyIndex int) (models.RawDecision, error) {
	prompt, err := buildUserPrompt(bundle, partyIndex)
	if err != nil {
		return models.RawDecision{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return models.RawDecision{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
			}
			continue
		}

		text := firstText(resp)
		if text == "" {
			return models.RawDecision{}, domainerrors.New(domainerrors.CodeUnavailable,
				"empty model response")
		}
		return parseAnswer(text)
	}
	return models.RawDecision{}, domainerrors.Wrap(lastErr, domainerrors.CodeUnavailable,
		"model call failed after retries")
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
