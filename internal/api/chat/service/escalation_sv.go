package chatService

import (
	"MunBotGolang/internal/entity"
)

type escalationOutcome int

const (
	escalationProceed escalationOutcome = iota
	escalationReprompt
	escalationSoftOffer
	escalationHard
)

const (
	escalationThreshold   = 3
	softOfferAt           = 2
	confidenceAcceptLevel = 0.6
)

// applyEscalation updates the per-session fallback counter and decides between
// proceeding, re-prompting, a soft escalation offer and a hard handoff.
func (s *chatService) applyEscalation(sess *entity.Session, confidence float64, sentiment string) escalationOutcome {
	if confidence >= confidenceAcceptLevel &&
		sentiment != SentimentNegative && sentiment != SentimentVeryNegative {
		sess.FallbackCount = 0
		return escalationProceed
	}

	sess.FallbackCount++

	if sess.FallbackCount >= escalationThreshold || sentiment == SentimentVeryNegative {
		sess.FallbackCount = 0
		return escalationHard
	}

	if sess.FallbackCount == softOfferAt {
		return escalationSoftOffer
	}

	return escalationReprompt
}
