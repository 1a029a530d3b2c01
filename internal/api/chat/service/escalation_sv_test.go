package chatService

import (
	"MunBotGolang/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEscalation(t *testing.T) {
	env := newTestEnv()

	t.Run("Confident Neutral Turn Proceeds And Resets", func(t *testing.T) {
		sess := &entity.Session{FallbackCount: 2}
		outcome := env.service.applyEscalation(sess, 0.8, SentimentNeutral)
		assert.Equal(t, escalationProceed, outcome)
		assert.Equal(t, 0, sess.FallbackCount)
	})

	t.Run("Three Strikes Escalate And Reset", func(t *testing.T) {
		sess := &entity.Session{}

		assert.Equal(t, escalationReprompt, env.service.applyEscalation(sess, 0.3, SentimentNeutral))
		assert.Equal(t, 1, sess.FallbackCount)

		assert.Equal(t, escalationSoftOffer, env.service.applyEscalation(sess, 0.3, SentimentNeutral))
		assert.Equal(t, 2, sess.FallbackCount)

		assert.Equal(t, escalationHard, env.service.applyEscalation(sess, 0.3, SentimentNeutral))
		assert.Equal(t, 0, sess.FallbackCount)
	})

	t.Run("Negative Sentiment Blocks Proceed", func(t *testing.T) {
		sess := &entity.Session{}
		outcome := env.service.applyEscalation(sess, 0.9, SentimentNegative)
		assert.Equal(t, escalationReprompt, outcome)
		assert.Equal(t, 1, sess.FallbackCount)
	})

	t.Run("Very Negative Escalates Immediately", func(t *testing.T) {
		sess := &entity.Session{}
		outcome := env.service.applyEscalation(sess, 0.2, SentimentVeryNegative)
		assert.Equal(t, escalationHard, outcome)
		assert.Equal(t, 0, sess.FallbackCount)
	})
}
