package carbon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"Receipt-Carbon-Backend/domain"

	"google.golang.org/genai"
)

const itemPromptTemplate = `From the following receipt text, extract only the food item names along with their quantities (ignore prices, GST, waiter, service charges and similar fields).

Receipt text: "%s"

Respond ONLY with a raw JSON array of objects, each with exactly these fields: "name" (string) and "quantity" (number). Do not include markdown formatting or any extra text.`

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

type (
	// ItemExtractor turns cleaned receipt text into typed (name, quantity)
	// records via the generative capability.
	ItemExtractor interface {
		ExtractItems(ctx context.Context, cleanedText string) ([]domain.ExtractedItem, error)
	}

	GeminiConfig struct {
		APIKey  string
		Model   string
		Timeout time.Duration
	}

	geminiExtractor struct {
		client  *genai.Client
		model   string
		timeout time.Duration
	}
)

func NewGeminiExtractor(ctx context.Context, cfg GeminiConfig) (ItemExtractor, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key not configured")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to init gemini client: %w", err)
	}

	return &geminiExtractor{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

func (g *geminiExtractor) ExtractItems(ctx context.Context, cleanedText string) ([]domain.ExtractedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(itemPromptTemplate, cleanedText)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty response from gemini")
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			raw.WriteString(part.Text)
		}
	}

	return parseExtractedItems(raw.String())
}

// parseExtractedItems validates and repairs the model output against the
// expected schema. Gemini loves wrapping JSON in markdown fences and prose;
// strip the fences, then take the outermost JSON array.
func parseExtractedItems(raw string) ([]domain.ExtractedItem, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```json") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimSuffix(raw, "```")
	} else if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(raw, "```")
	}
	raw = strings.TrimSpace(raw)

	if match := jsonArrayPattern.FindString(raw); match != "" {
		raw = match
	}

	var items []domain.ExtractedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	valid := items[:0]
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		valid = append(valid, item)
	}

	return valid, nil
}

// summarizeItems renders the extracted items as the "Item Name - Quantity"
// list the scoring service consumes.
func summarizeItems(items []domain.ExtractedItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s - %g", item.Name, item.Quantity)
	}
	return b.String()
}
