// Package openai genera recomendaciones contra cualquier API compatible con
// /chat/completions.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-social/internal/domain/recommendations"
	"pet-social/internal/platform/httpclient"
)

const DefaultBaseURL = "https://api.openai.com/v1"

var ErrEmptyReply = errors.New("openai: empty reply")

var fence = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Generator struct {
	client *httpclient.Client
	model  string
}

func New(opts Options) (*Generator, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimSuffix(strings.TrimRight(base, "/"), "/chat/completions")

	c, err := httpclient.New(base, opts.Timeout, httpclient.WithBearer(opts.APIKey))
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Generator{client: c, model: model}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (g *Generator) Generate(ctx context.Context, s recommendations.Subject) (recommendations.Document, error) {
	req := chatRequest{
		Model: g.model,
		Messages: []message{
			{Role: "system", Content: "You are a veterinary assistant. Reply with JSON only."},
			{Role: "user", Content: Prompt(s)},
		},
		Temperature: 0.7,
	}

	var resp chatResponse
	if err := g.client.PostJSON(ctx, "/chat/completions", req, &resp); err != nil {
		return recommendations.Document{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return recommendations.Document{}, ErrEmptyReply
	}
	return ParseReply(resp.Choices[0].Message.Content)
}

// Prompt pide el documento con las cuatro secciones y sus claves exactas.
func Prompt(s recommendations.Subject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate care recommendations for a pet.\n")
	fmt.Fprintf(&b, "Name: %s\nSpecies: %s\nBreed: %s\nAge: %d\nGender: %s\n\n",
		s.Name, orUnknown(s.Species), orUnknown(s.Breed), s.Age, orUnknown(s.Gender))
	b.WriteString(`Respond with a JSON object with exactly these keys:
{"trainingPlan":{"goals":[],"exercises":[],"schedule":""},
"breedingAdvice":{"considerations":[],"healthChecks":[],"timing":""},
"careGuidelines":{"diet":[],"grooming":[],"exercise":[],"environment":[]},
"medicalRecommendations":{"vaccinations":[],"screenings":[],"warnings":[],"checkupFrequency":""}}`)
	return b.String()
}

// ParseReply acepta JSON plano o envuelto en un bloque ``` (con o sin "json").
func ParseReply(content string) (recommendations.Document, error) {
	raw := extractJSON(content)
	if raw == "" {
		return recommendations.Document{}, ErrEmptyReply
	}
	var doc recommendations.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return recommendations.Document{}, fmt.Errorf("openai: decode reply: %w", err)
	}
	return doc, nil
}

func extractJSON(content string) string {
	if m := fence.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	var raw json.RawMessage
	if err := json.NewDecoder(strings.NewReader(content[start:])).Decode(&raw); err != nil {
		return ""
	}
	return string(raw)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
