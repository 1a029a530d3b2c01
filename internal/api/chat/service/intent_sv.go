package chatService

import (
	"MunBotGolang/internal/entity"
	"MunBotGolang/pkg/nlp"
	openaiPkg "MunBotGolang/pkg/openai"
	"context"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	IntentComplaint   = "reclamo"
	IntentAppointment = "agendar_hora"
	IntentDocSearch   = "busqueda_documento"
	IntentUnknown     = "desconocido"
)

const (
	SentimentVeryNegative = "very_negative"
	SentimentNegative     = "negative"
	SentimentNeutral      = "neutral"
	SentimentPositive     = "positive"
)

const (
	ruleConfidence          = 0.8
	modelAcceptance         = 0.6
	modelFallbackConfidence = 0.6
	classifierTimeout       = 5 * time.Second
)

type intentRule struct {
	pattern *regexp.Regexp
	intent  string
}

// Ordered rule table evaluated against normalized text; first match wins.
var intentRules = []intentRule{
	{regexp.MustCompile(`\b(reclamo|reclamar|queja|quejarme|denuncia|denunciar)\b`), IntentComplaint},
	{regexp.MustCompile(`\b(agendar|agenda|cita|hora|reservar)\b`), IntentAppointment},
	{regexp.MustCompile(`\b(documento|certificado|permiso|patente|tramite)\b`), IntentDocSearch},
}

var validIntents = map[string]bool{
	IntentComplaint:   true,
	IntentAppointment: true,
	IntentDocSearch:   true,
	IntentUnknown:     true,
}

type intentResult struct {
	Intent     string
	Confidence float64
	Sentiment  string
}

// classifyIntent runs the keyword rules first; only when none matches is the
// learned model consulted, and its failures never escape this component.
func (s *chatService) classifyIntent(ctx context.Context, message string, history []entity.Turn) intentResult {
	normalized := nlp.Normalize(message)

	for _, rule := range intentRules {
		if rule.pattern.MatchString(normalized) {
			return intentResult{
				Intent:     rule.intent,
				Confidence: ruleConfidence,
				Sentiment:  SentimentNeutral,
			}
		}
	}

	keywordResult := intentResult{
		Intent:     IntentUnknown,
		Confidence: modelFallbackConfidence,
		Sentiment:  SentimentNeutral,
	}

	modelCtx, cancel := context.WithTimeout(ctx, classifierTimeout)
	defer cancel()

	classification, err := s.classifier.ClassifyIntent(modelCtx, message, packHistory(history))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Model classifier failed, using keyword result")
		return keywordResult
	}

	result := intentResult{
		Intent:     classification.Intent,
		Confidence: classification.Confidence,
		Sentiment:  classification.Sentiment,
	}

	// an invalid or timid model intent is discarded; its sentiment is kept
	if !validIntents[result.Intent] || result.Confidence < modelAcceptance {
		result.Intent = keywordResult.Intent
		result.Confidence = keywordResult.Confidence
	}

	if result.Sentiment == "" {
		result.Sentiment = SentimentNeutral
	}

	return result
}

func packHistory(history []entity.Turn) []openaiPkg.ConversationMessage {
	// the last turn is the message under classification; skip it
	if len(history) > 0 {
		history = history[:len(history)-1]
	}

	messages := make([]openaiPkg.ConversationMessage, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.Speaker == "assistant" {
			role = "assistant"
		}
		messages = append(messages, openaiPkg.ConversationMessage{
			Role:    role,
			Content: turn.Text,
		})
	}

	return messages
}
