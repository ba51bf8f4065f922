package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"sentiserve/config"
)

const openAIRequestTimeout = 60 * time.Second

const sentimentPrompt = `Classify the sentiment of the following text.

Text:
"%s"

Respond in JSON format only:
{
  "label": "negative|neutral|positive",
  "score": 0.0-1.0
}`

// OpenAIEngine classifies text through a chat-completion model. Requires
// OPENAI_API_KEY in the environment.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

func NewOpenAIEngine(settings config.Settings) (*OpenAIEngine, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("[OpenAIEngine] missing OPENAI_API_KEY in environment variables")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.HTTPClient = &http.Client{Timeout: openAIRequestTimeout}

	slog.Info("[OpenAIEngine] Client initialized",
		slog.String("model", settings.OpenAIModel),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientConfig),
		model:  settings.OpenAIModel,
	}, nil
}

func (e *OpenAIEngine) Name() string { return "openai" }

func (e *OpenAIEngine) Classify(ctx context.Context, texts []string) ([]Prediction, error) {
	predictions := make([]Prediction, 0, len(texts))
	for _, text := range texts {
		prediction, err := e.classifyOne(ctx, text)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	return predictions, nil
}

func (e *OpenAIEngine) classifyOne(ctx context.Context, text string) (Prediction, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(sentimentPrompt, text)},
		},
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("[OpenAIEngine] completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Prediction{}, fmt.Errorf("[OpenAIEngine] no choices in response")
	}

	return parseCompletion(resp.Choices[0].Message.Content)
}

// parseCompletion tolerates fenced JSON blocks, which chat models emit even
// when told not to.
func parseCompletion(content string) (Prediction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Prediction{}, fmt.Errorf("[OpenAIEngine] unparseable completion: %w", err)
	}
	if parsed.Label == "" {
		return Prediction{}, fmt.Errorf("[OpenAIEngine] completion missing label")
	}

	return Prediction{Label: parsed.Label, Score: parsed.Score}, nil
}
