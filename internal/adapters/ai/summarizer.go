package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Payload carries the analysis context fed to the strategic summarizer
type Payload struct {
	RawTexts       []string
	Verdict        string
	Intensity      float64
	EdenDetected   bool
	EdenSource     string
	Mood           string
	IsCrowded      bool
	HardData       string
	ClusterContext string
	MemoryContext  string
	Entropy        float64
}

// Summarizer produces the strategic analysis via an LLM. May fail; callers
// fall back to the local summary.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates new OpenAI-backed summarizer
func NewSummarizer(apiKey, model string) *Summarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Summarizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Summarize renders the prompt and requests the strategic analysis
func (s *Summarizer) Summarize(ctx context.Context, payload Payload) (string, error) {
	eden := "NAO DETECTADO"
	if payload.EdenDetected {
		eden = fmt.Sprintf("DETECTADO (%s)", payload.EdenSource)
	}

	texts := payload.RawTexts
	if len(texts) > 10 {
		texts = texts[:10]
	}

	prompt := fmt.Sprintf(`ANALISTA MACRO SENIOR. IGNORE RUIDO. EXTRAIA SINAL.

HORACULO:
veredito=%s
intensidade=%.3f
eden=%s
psicologia=%s crowded=%t

DADOS:
%s

NARRATIVAS:
%s

MEMORIA:
%s

NOTICIAS (LIMPAS):
%s

TAREFA:
1 incentivos
2 dados vs manchete
3 assimetria
4 cenarios base otimista pessimista
`,
		payload.Verdict,
		payload.Intensity,
		eden,
		payload.Mood,
		payload.IsCrowded,
		payload.HardData,
		payload.ClusterContext,
		payload.MemoryContext,
		strings.Join(texts, "\n"),
	)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Senior investment strategist detecting market manipulation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("strategic analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("strategic analysis returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
