package chatService

import (
	"context"
	"errors"
	"testing"

	openaiPkg "MunBotGolang/pkg/openai"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntentRules(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []struct {
		message string
		intent  string
	}{
		{"quiero hacer un reclamo por la basura", IntentComplaint},
		{"Necesito AGENDAR una visita", IntentAppointment},
		{"¿dónde saco un certificado?", IntentDocSearch},
		{"me gustaría reservar atención", IntentAppointment},
	}

	for _, tc := range cases {
		result := env.service.classifyIntent(ctx, tc.message, nil)
		assert.Equal(t, tc.intent, result.Intent, tc.message)
		assert.Equal(t, ruleConfidence, result.Confidence, tc.message)
		assert.Equal(t, SentimentNeutral, result.Sentiment, tc.message)
	}

	// rules resolved everything without touching the model
	assert.Equal(t, 0, env.classifier.callCount())
}

func TestClassifyIntentModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepts Confident Model Result", func(t *testing.T) {
		env := newTestEnv()
		env.classifier.result = &openaiPkg.IntentClassification{
			Intent:     IntentComplaint,
			Confidence: 0.9,
			Sentiment:  SentimentNegative,
		}

		result := env.service.classifyIntent(ctx, "estoy harto de esto", nil)
		assert.Equal(t, IntentComplaint, result.Intent)
		assert.Equal(t, 0.9, result.Confidence)
		assert.Equal(t, SentimentNegative, result.Sentiment)
		assert.Equal(t, 1, env.classifier.callCount())
	})

	t.Run("Discards Timid Intent Keeps Sentiment", func(t *testing.T) {
		env := newTestEnv()
		env.classifier.result = &openaiPkg.IntentClassification{
			Intent:     IntentComplaint,
			Confidence: 0.4,
			Sentiment:  SentimentPositive,
		}

		result := env.service.classifyIntent(ctx, "me pueden ayudar", nil)
		assert.Equal(t, IntentUnknown, result.Intent)
		assert.Equal(t, modelFallbackConfidence, result.Confidence)
		assert.Equal(t, SentimentPositive, result.Sentiment)
	})

	t.Run("Discards Invalid Intent", func(t *testing.T) {
		env := newTestEnv()
		env.classifier.result = &openaiPkg.IntentClassification{
			Intent:     "pedir_pizza",
			Confidence: 0.95,
			Sentiment:  "",
		}

		result := env.service.classifyIntent(ctx, "me pueden ayudar", nil)
		assert.Equal(t, IntentUnknown, result.Intent)
		assert.Equal(t, SentimentNeutral, result.Sentiment)
	})

	t.Run("Model Failure Falls Back To Keywords", func(t *testing.T) {
		env := newTestEnv()
		env.classifier.err = errors.New("model unavailable")

		result := env.service.classifyIntent(ctx, "me pueden ayudar", nil)
		assert.Equal(t, IntentUnknown, result.Intent)
		assert.Equal(t, modelFallbackConfidence, result.Confidence)
		assert.Equal(t, SentimentNeutral, result.Sentiment)
	})
}
