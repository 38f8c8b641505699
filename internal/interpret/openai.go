package interpret

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ezchajim/azilut/internal/model"
)

// OpenAIInterpreter asks a chat model which registers a text speaks at.
// Output shape is identical to the heuristic's: four results, priority
// order, sentinel where the model found nothing. Any API failure falls
// back to the heuristic so interpretation never blocks a message.
type OpenAIInterpreter struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	maxTok   int
	fallback *Heuristic
}

// NewOpenAIInterpreter creates the LLM-backed interpreter.
func NewOpenAIInterpreter(cfg model.InterpretConfig) (*OpenAIInterpreter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai interpreter: API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxTok := cfg.MaxTokens
	if maxTok == 0 {
		maxTok = 256
	}

	return &OpenAIInterpreter{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    chatModel,
		timeout:  timeout,
		maxTok:   maxTok,
		fallback: NewHeuristic(),
	}, nil
}

const interpretPrompt = `You classify a short text into four interpretive registers:
esoteric (hidden meaning), homiletic (expounded meaning), allusive (hinted
meaning), literal (surface meaning).

For each register, answer on its own line as "<register>: <short label>".
If the text yields nothing at a register, answer "<register>: none".
Answer for all four registers, nothing else.`

// Interpret queries the model; on any error or unparsable reply it returns
// the heuristic's results instead.
func (o *OpenAIInterpreter) Interpret(ctx context.Context, text string) ([]model.Interpretation, error) {
	if strings.TrimSpace(text) == "" {
		return o.fallback.Interpret(ctx, text)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: o.maxTok,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: interpretPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return o.fallback.Interpret(ctx, text)
	}

	parsed := parseRegisterLines(resp.Choices[0].Message.Content)
	results := make([]model.Interpretation, 0, len(registerOrder))
	for _, reg := range registerOrder {
		label, ok := parsed[reg]
		if !ok || label == "" || strings.EqualFold(label, "none") {
			results = append(results, sentinel(reg))
			continue
		}
		results = append(results, model.Interpretation{Register: reg, Label: label})
	}
	return results, nil
}

// parseRegisterLines reads "<register>: <label>" lines.
func parseRegisterLines(reply string) map[model.Register]string {
	parsed := make(map[model.Register]string, len(registerOrder))
	for _, line := range strings.Split(reply, "\n") {
		name, label, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		label = strings.TrimSpace(label)
		for _, reg := range registerOrder {
			if name == reg.String() {
				parsed[reg] = label
			}
		}
	}
	return parsed
}

// NewInterpreter builds the interpreter selected by configuration. An
// empty or "heuristic" provider yields the built-in one.
func NewInterpreter(cfg model.InterpretConfig) (Interpreter, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "heuristic":
		return NewHeuristic(), nil
	case "openai":
		return NewOpenAIInterpreter(cfg)
	default:
		return nil, fmt.Errorf("unknown interpret provider: %s (supported: heuristic, openai)", cfg.Provider)
	}
}
