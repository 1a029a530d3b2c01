package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type IClassifier interface {
	ClassifyIntent(ctx context.Context, userMessage string, conversationHistory []ConversationMessage) (*IntentClassification, error)
}

type ConversationMessage struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

type IntentClassification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Sentiment  string  `json:"sentiment"`
}

type classifierService struct {
	client *openai.Client
	model  string
}

func NewClassifier() IClassifier {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4oMini
	}

	return &classifierService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *classifierService) ClassifyIntent(
	ctx context.Context,
	userMessage string,
	conversationHistory []ConversationMessage,
) (*IntentClassification, error) {
	systemPrompt := `Eres un clasificador de intenciones para un asistente municipal chileno.

IMPORTANTE: Responde SOLO con JSON válido, nada más.

Formato:
{
  "intent": "reclamo",
  "confidence": 0.9,
  "sentiment": "neutral"
}

Reglas:
- intent: uno de "reclamo", "agendar_hora", "busqueda_documento", "desconocido"
- confidence: valor numérico entre 0 y 1
- sentiment: uno de "very_negative", "negative", "neutral", "positive"

Ejemplo de entrada: "estoy furioso, llevo semanas esperando que arreglen la luminaria"
Ejemplo de salida: {"intent":"reclamo","confidence":0.95,"sentiment":"very_negative"}`

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
	}

	for _, msg := range conversationHistory {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.2,
			MaxTokens:   100,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("classifier API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from classifier")
	}

	var classification IntentClassification
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &classification); err != nil {
		return nil, fmt.Errorf("failed to parse intent classification: %w", err)
	}

	return &classification, nil
}
