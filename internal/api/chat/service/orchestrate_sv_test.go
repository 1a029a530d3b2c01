package chatService

import (
	"MunBotGolang/internal/api/chat"
	"MunBotGolang/internal/entity"
	redisPkg "MunBotGolang/pkg/redis"
	"context"
	"testing"

	openaiPkg "MunBotGolang/pkg/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMessageSmallTalk(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	t.Run("Greeting Answered From Knowledge Base", func(t *testing.T) {
		res, err := env.service.ProcessMessage(ctx, chat.MessageRequest{Message: "hola"})
		require.NoError(t, err)
		assert.Contains(t, res.AnswerText, "asistente virtual")
		assert.NotContains(t, res.AnswerText, "¿Te sirvió esta respuesta?")
		assert.NotEmpty(t, res.SessionID)
		assert.True(t, env.store.has(redisPkg.SessionKeyPrefix+res.SessionID))
	})

	t.Run("Thanks Answered From Knowledge Base", func(t *testing.T) {
		res, err := env.service.ProcessMessage(ctx, chat.MessageRequest{Message: "muchas gracias"})
		require.NoError(t, err)
		assert.Contains(t, res.AnswerText, "De nada")
		assert.NotContains(t, res.AnswerText, "¿Te sirvió esta respuesta?")
	})
}

func TestSessionBusyZeroValueFlow(t *testing.T) {
	assert.False(t, sessionBusy(&entity.Session{}))
	assert.True(t, sessionBusy(&entity.Session{ActiveFlow: entity.FlowComplaint}))
}

func TestProcessMessageFarewellEndsSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.service.ProcessMessage(ctx, chat.MessageRequest{Message: "hola"})
	require.NoError(t, err)
	require.True(t, env.store.has(redisPkg.SessionKeyPrefix+first.SessionID))

	bye, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: first.SessionID,
		Message:   "adiós",
	})
	require.NoError(t, err)
	assert.Equal(t, msgFarewell, bye.AnswerText)
	assert.False(t, env.store.has(redisPkg.SessionKeyPrefix+first.SessionID))
}

func TestProcessMessageFAQWithFeedback(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	res, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		Message: "¿Cuál es el horario de atención de la municipalidad?",
	})
	require.NoError(t, err)
	assert.Contains(t, res.AnswerText, "8:30")
	assert.Contains(t, res.AnswerText, "¿Te sirvió esta respuesta?")

	followUp, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: res.SessionID,
		Message:   "sí",
	})
	require.NoError(t, err)
	assert.Contains(t, followUp.AnswerText, "Me alegro")

	require.Len(t, env.repo.curation.feedback, 1)
	assert.True(t, env.repo.curation.feedback[0].Helpful)
}

func TestProcessMessagePlainChannelStripsEmphasis(t *testing.T) {
	env := newTestEnv()

	res, err := env.service.ProcessMessage(context.Background(), chat.MessageRequest{
		Message: "¿Cuál es el horario de atención de la municipalidad?",
		Channel: "plain",
	})
	require.NoError(t, err)
	assert.Contains(t, res.AnswerText, "8:30")
	assert.NotContains(t, res.AnswerText, "**")
}

func TestProcessMessageStartsComplaintFlow(t *testing.T) {
	env := newTestEnv()

	res, err := env.service.ProcessMessage(context.Background(), chat.MessageRequest{
		Message: "quiero hacer un reclamo",
	})
	require.NoError(t, err)
	assert.Contains(t, res.AnswerText, "nombre completo")
	assert.Equal(t, fieldNombre, res.PendingField)
}

func TestProcessMessageCancellation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	started, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		Message: "quiero hacer un reclamo",
	})
	require.NoError(t, err)
	require.Equal(t, fieldNombre, started.PendingField)

	cancelled, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: started.SessionID,
		Message:   "mejor cancelar todo",
	})
	require.NoError(t, err)
	assert.Contains(t, cancelled.AnswerText, "cancelé")
	assert.Empty(t, cancelled.PendingField)
}

func TestProcessMessageKeywordInsideSlotTextDoesNotCancel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	started, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		Message: "quiero hacer un reclamo",
	})
	require.NoError(t, err)
	require.Equal(t, fieldNombre, started.PendingField)

	sess, err := env.service.GetSession(ctx, started.SessionID)
	require.NoError(t, err)
	sess.PendingField = fieldMensaje
	sess.ComplaintDraft = &entity.ComplaintDraft{Nombre: "María Pérez", Rut: "12.345.678-5"}
	require.NoError(t, env.service.saveSession(ctx, sess))

	res, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: started.SessionID,
		Message:   "los autos estacionados no dejan salir a los vecinos del pasaje",
	})
	require.NoError(t, err)
	assert.Equal(t, fieldDepartamento, res.PendingField)
	assert.Contains(t, res.AnswerText, "departamento")
}

func TestProcessMessageFreeFormLogsMiss(t *testing.T) {
	env := newTestEnv()

	res, err := env.service.ProcessMessage(context.Background(), chat.MessageRequest{
		Message: "estoy aburrido de esperar tanto",
	})
	require.NoError(t, err)
	assert.Equal(t, "respuesta generada", res.AnswerText)

	// the knowledge-base miss was persisted for curation
	require.Len(t, env.repo.curation.unanswered, 1)
	assert.Equal(t, "estoy aburrido de esperar tanto", env.repo.curation.unanswered[0].Question)
}

func TestProcessMessageEscalationLadder(t *testing.T) {
	env := newTestEnv()
	env.classifier.result = &openaiPkg.IntentClassification{
		Intent:     IntentUnknown,
		Confidence: 0.9,
		Sentiment:  SentimentNegative,
	}
	ctx := context.Background()

	first, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		Message: "estoy aburrido de esperar tanto",
	})
	require.NoError(t, err)
	assert.Equal(t, msgReprompt, first.AnswerText)
	assert.False(t, first.Escalated)

	second, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: first.SessionID,
		Message:   "sigo sin entender nada de esto",
	})
	require.NoError(t, err)
	assert.Equal(t, msgSoftOffer, second.AnswerText)
	assert.False(t, second.Escalated)

	third, err := env.service.ProcessMessage(ctx, chat.MessageRequest{
		SessionID: first.SessionID,
		Message:   "esto no me sirve de nada",
	})
	require.NoError(t, err)
	assert.Equal(t, msgEscalated, third.AnswerText)
	assert.True(t, third.Escalated)
}

func TestProcessMessageVeryNegativeEscalatesImmediately(t *testing.T) {
	env := newTestEnv()
	env.classifier.result = &openaiPkg.IntentClassification{
		Intent:     IntentUnknown,
		Confidence: 0.9,
		Sentiment:  SentimentVeryNegative,
	}

	res, err := env.service.ProcessMessage(context.Background(), chat.MessageRequest{
		Message: "estoy aburrido de esperar tanto",
	})
	require.NoError(t, err)
	assert.Equal(t, msgEscalated, res.AnswerText)
	assert.True(t, res.Escalated)
}
