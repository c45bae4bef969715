package describe

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"furnihome/go_backend/internal/domain/ai/textgen"
)

const defaultSentenceMax = 120

// ProductInput carries the attributes interpolated into the prompt and the
// fallback templates.
type ProductInput struct {
	Title      string  `json:"title"`
	Brand      string  `json:"brand"`
	Categories string  `json:"categories"`
	Material   string  `json:"material"`
	Price      float64 `json:"price"`
}

// Generator turns product attributes into a short two-sentence description.
// The generation model is small and prone to repetitive or incoherent
// output, so the raw completion is sanitized and checked against a quality
// gate; anything that fails the gate is replaced by a fixed template. The
// result is always a presentable string, never an error.
type Generator struct {
	Gen         textgen.Generator
	SentenceMax int
}

func New(gen textgen.Generator, sentenceMax int) *Generator {
	if sentenceMax <= 0 {
		sentenceMax = defaultSentenceMax
	}
	return &Generator{Gen: gen, SentenceMax: sentenceMax}
}

func (g *Generator) Generate(ctx context.Context, p ProductInput) string {
	prompt := buildPrompt(p)
	raw, err := g.Gen.Complete(ctx, prompt, textgen.Options{
		MaxTokens:   60,
		Temperature: 0.6,
		TopP:        0.85,
	})
	if err != nil {
		log.Printf("describe generation failed, using template: %v", err)
		return pickTemplate(p)
	}

	final := g.assemble(raw, prompt)
	if !qualityOK(final) {
		return pickTemplate(p)
	}
	return final
}

func buildPrompt(p ProductInput) string {
	return fmt.Sprintf(
		"Write two short, simple, and realistic sentences describing a furniture product. "+
			"Avoid repeating words. Keep it factual, clear, and natural.\n\n"+
			"Title: %s\n"+
			"Brand: %s\n"+
			"Category: %s\n"+
			"Material: %s\n"+
			"Price: ₹%s\n\n"+
			"Description:",
		p.Title, p.Brand, p.Categories, p.Material,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
	)
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	symbolRe     = regexp.MustCompile(`[^A-Za-z0-9\s,.₹]`)
)

// assemble cleans the raw completion and keeps at most the first two
// plausible sentences, ending with a period.
func (g *Generator) assemble(raw, prompt string) string {
	text := strings.TrimSpace(strings.TrimPrefix(raw, prompt))
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = collapseRepeats(text)
	text = symbolRe.ReplaceAllString(text, "")

	var sentences []string
	for _, part := range strings.Split(text, ".") {
		s := strings.TrimSpace(part)
		if len(s) > 5 && len(s) < g.SentenceMax {
			sentences = append(sentences, capitalize(s))
		}
		if len(sentences) == 2 {
			break
		}
	}

	final := strings.Join(sentences, ". ")
	if !strings.HasSuffix(final, ".") {
		final += "."
	}
	return final
}

// collapseRepeats drops immediately-repeated whole words ("nice nice chair"
// becomes "nice chair").
func collapseRepeats(s string) string {
	words := strings.Fields(s)
	out := words[:0]
	prev := ""
	for _, w := range words {
		if w == prev {
			continue
		}
		out = append(out, w)
		prev = w
	}
	return strings.Join(out, " ")
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// qualityOK rejects empty, too-short, or degenerately repetitive output:
// at least 6 words with a distinct-word ratio of 0.6 or better.
func qualityOK(s string) bool {
	if s == "" || s == "." {
		return false
	}
	words := strings.Fields(strings.ToLower(s))
	if len(words) < 6 {
		return false
	}
	distinct := map[string]struct{}{}
	for _, w := range words {
		distinct[w] = struct{}{}
	}
	return float64(len(distinct)) >= float64(len(words))*0.6
}

func templates(p ProductInput) []string {
	categories := strings.ToLower(p.Categories)
	return []string{
		fmt.Sprintf("%s by %s is crafted from %s for durability and style. Perfect for modern %s spaces.",
			p.Title, p.Brand, p.Material, categories),
		fmt.Sprintf("The %s %s combines elegant %s with reliable quality. A great fit for any home or office.",
			p.Brand, p.Title, p.Material),
		fmt.Sprintf("Designed by %s, this %s piece is made from %s for a timeless and sturdy look.",
			p.Brand, categories, p.Material),
	}
}

func pickTemplate(p ProductInput) string {
	pool := templates(p)
	return pool[rand.Intn(len(pool))]
}
