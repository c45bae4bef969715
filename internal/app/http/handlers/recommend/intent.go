package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"furnihome/go_backend/internal/domain/ai/textgen"
)

const intentPrompt = "You are an assistant helping select furniture.\n" +
	"Extract a clean search query and constraints from the user's message and prior context.\n" +
	"Return JSON with keys: query, room, style, material, color, min_price, max_price.\n" +
	"If unknown, use null.\n\n" +
	"History:\n%s\n\n" +
	"Message:\n%s\n\n" +
	"JSON:"

// extractIntent asks the generation model for a structured reading of the
// message. Extraction is best-effort: any failure, from an unreachable
// service to malformed JSON, falls back to an intent that carries the raw
// message as the query. Errors are never surfaced to the caller.
func (s *Service) extractIntent(ctx context.Context, message, history string) Intent {
	fallback := defaultIntent(message)

	prompt := fmt.Sprintf(intentPrompt, history, message)
	raw, err := s.Gen.Complete(ctx, prompt, textgen.Options{
		MaxTokens:   80,
		Temperature: 0.5,
		TopP:        0.9,
	})
	if err != nil {
		log.Printf("intent extraction failed, using fallback: %v", err)
		return fallback
	}

	intent, err := parseIntent(raw)
	if err != nil {
		log.Printf("intent parse failed, using fallback: %v", err)
		return fallback
	}
	if intent.Query == nil || strings.TrimSpace(*intent.Query) == "" {
		intent.Query = nil
	}
	return intent
}

func defaultIntent(message string) Intent {
	return Intent{Query: &message}
}

// parseIntent scans free-form model output for the first balanced
// brace-delimited span and decodes it. Pure, so the fragile part is
// testable without the generation service.
func parseIntent(raw string) (Intent, error) {
	span, ok := braceSpan(raw)
	if !ok {
		return Intent{}, errors.New("no JSON object in model output")
	}

	// Prices may arrive as numbers or numeric strings; decode them loosely.
	var aux struct {
		Query    *string     `json:"query"`
		Room     *string     `json:"room"`
		Style    *string     `json:"style"`
		Material *string     `json:"material"`
		Color    *string     `json:"color"`
		MinPrice interface{} `json:"min_price"`
		MaxPrice interface{} `json:"max_price"`
	}
	if err := json.Unmarshal([]byte(span), &aux); err != nil {
		return Intent{}, err
	}
	return Intent{
		Query:    aux.Query,
		Room:     aux.Room,
		Style:    aux.Style,
		Material: aux.Material,
		Color:    aux.Color,
		MinPrice: parsePrice(aux.MinPrice),
		MaxPrice: parsePrice(aux.MaxPrice),
	}, nil
}

// braceSpan returns the first top-level {...} span in s.
func braceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
