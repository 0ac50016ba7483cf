package tip

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Fetcher produces a short motivational line for a habit and its streak.
// Implementations degrade to a fixed fallback string instead of failing;
// the caller treats the result as display text only.
type Fetcher interface {
	Tip(ctx context.Context, habitName string, streak int) string
}

// Static always answers with the same line. Used when the Gemini
// integration is disabled and in tests.
type Static struct {
	Text string
}

func (s Static) Tip(ctx context.Context, habitName string, streak int) string {
	return s.Text
}

// GenAI fetches tips from the Gemini API.
type GenAI struct {
	client   *genai.Client
	model    string
	fallback string
	timeout  time.Duration
}

func NewGenAI(ctx context.Context, apiKey, model, fallback string) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAI{
		client:   client,
		model:    model,
		fallback: fallback,
		timeout:  15 * time.Second,
	}, nil
}

func (g *GenAI) Tip(ctx context.Context, habitName string, streak int) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"O utilizador está a tentar manter o hábito %q e tem uma sequência de %d dias. "+
			"Dá uma dica motivacional curta (máximo 2 frases) para o incentivar a continuar e subir de nível. "+
			"Responde em Português de Portugal num tom épico de RPG.",
		habitName, streak,
	)

	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return g.fallback
	}
	text := res.Text()
	if text == "" {
		return g.fallback
	}
	return text
}
