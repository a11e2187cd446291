package advisory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-pro"

const defaultMaxToolRounds = 5

const systemInstruction = `You are a planning assistant for an employee who must spend a share of
their workdays in the office. You suggest when to take paid time off.
Always use the calculator tool for arithmetic on day counts and never
invent holidays that are not listed in the request.`

// chatSession is the part of *genai.Chat the generator needs.
type chatSession interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator answers prompts with a Gemini model that may call the
// calculator tool.
type GeminiGenerator struct {
	startChat     func(ctx context.Context) (chatSession, error)
	maxToolRounds int
	logger        *zap.Logger
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		Tools: []*genai.Tool{
			{FunctionDeclarations: []*genai.FunctionDeclaration{calculatorDeclaration}},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}

	logger.Info("Gemini advisory generator ready", zap.String("model", model))

	return &GeminiGenerator{
		startChat: func(ctx context.Context) (chatSession, error) {
			return client.Chats.Create(ctx, model, config, nil)
		},
		maxToolRounds: defaultMaxToolRounds,
		logger:        logger,
	}, nil
}

// Suggest sends prompt in a fresh chat and answers calculator calls until
// the model returns text.
func (g *GeminiGenerator) Suggest(ctx context.Context, prompt string) (string, error) {
	chat, err := g.startChat(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start chat: %w", err)
	}

	parts := []*genai.Part{{Text: prompt}}
	for round := 0; ; round++ {
		resp, err := chat.Send(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("failed to send message: %w", err)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			text := resp.Text()
			if text == "" {
				return "", errors.New("model returned an empty answer")
			}
			return text, nil
		}

		if round >= g.maxToolRounds {
			return "", fmt.Errorf("model still calling tools after %d rounds", g.maxToolRounds)
		}

		parts = make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			fresp := g.dispatch(ctx, call)
			g.logger.Debug("Answered model tool call",
				zap.String("tool", call.Name),
				zap.Any("args", call.Args),
				zap.Any("response", fresp.Response))
			parts = append(parts, &genai.Part{FunctionResponse: fresp})
		}
	}
}

func (g *GeminiGenerator) dispatch(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	if call.Name == calculatorName {
		return callCalculator(ctx, call)
	}
	return &genai.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Response: map[string]any{
			"error": fmt.Sprintf("unknown tool %q", call.Name),
		},
	}
}
