package chatService

import (
	"MunBotGolang/internal/entity"
	"MunBotGolang/pkg/nlp"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const faqEscapeOption = "Mi opción no está en la lista"

// LoadFAQEntries reads the curated question/answer table once at startup.
func LoadFAQEntries(path string) ([]nlp.Entry, error) {
	if path == "" {
		path = "./databases/faq_respuestas.json"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file %s: %w", path, err)
	}

	var entries []nlp.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file %s: %w", path, err)
	}

	return entries, nil
}

// matchFAQ runs the knowledge-base matcher and translates its outcome into a
// turn reply, recording any clarification snapshot in the session. A miss is
// logged for curation and leaves the turn unhandled for the next stage.
func (s *chatService) matchFAQ(ctx context.Context, sess *entity.Session, message string) (*turnReply, bool) {
	result := s.matcher.Match(message)

	switch result.Kind {
	case nlp.MatchAnswered:
		sess.FallbackCount = 0

		if result.Category == nlp.CategoryFarewell {
			return &turnReply{Text: result.Answer, EndSession: true}, true
		}

		text := result.Answer
		if result.Category == nlp.CategoryMunicipal || result.Category == nlp.CategoryGeneral {
			sess.FeedbackPending = message
			text += "\n\n¿Te sirvió esta respuesta? (sí/no)"
		}
		return &turnReply{Text: text}, true

	case nlp.MatchClarify:
		sess.ClearSubFlows()
		sess.FAQClarification = &entity.FAQClarification{
			Variant: result.Candidate.Variant,
			Answer:  result.Candidate.Answer,
		}
		return &turnReply{
			Text: fmt.Sprintf("¿Quisiste decir: «%s»? (sí/no)", result.Candidate.Variant),
		}, true

	case nlp.MatchChoose:
		sess.ClearSubFlows()
		var sb strings.Builder
		sb.WriteString("Encontré varias preguntas parecidas. ¿Cuál corresponde a la tuya?\n")

		choices := make([]entity.FAQChoice, 0, len(result.Choices))
		for i, c := range result.Choices {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c.Variant))
			choices = append(choices, entity.FAQChoice{Variant: c.Variant, Answer: c.Answer})
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", len(choices)+1, faqEscapeOption))
		sb.WriteString("Responde con el número de tu opción.")

		sess.FAQChoices = choices
		return &turnReply{Text: sb.String()}, true

	default:
		s.logUnansweredQuestion(ctx, sess.ID, message, result)
		return nil, false
	}
}

func (s *chatService) resumeFAQChoice(sess *entity.Session, normalized string) (*turnReply, error) {
	choices := sess.FAQChoices
	escape := len(choices) + 1

	n, ok := parseMenuChoice(normalized, escape)
	if !ok {
		return &turnReply{
			Text: fmt.Sprintf("Por favor responde con un número entre 1 y %d.", escape),
		}, nil
	}

	sess.FAQChoices = nil

	if n == escape {
		return &turnReply{Text: "Entiendo, tu consulta no estaba en la lista. ¿Puedes escribirla con otras palabras?"}, nil
	}

	sess.FallbackCount = 0
	return &turnReply{Text: choices[n-1].Answer}, nil
}

func (s *chatService) resumeFAQClarification(ctx context.Context, sess *entity.Session, message, normalized string) (*turnReply, error) {
	clarification := sess.FAQClarification
	sess.FAQClarification = nil

	if isAffirmative(normalized) {
		sess.FallbackCount = 0
		return &turnReply{Text: clarification.Answer}, nil
	}

	if isNegative(normalized) {
		return &turnReply{Text: "De acuerdo. ¿Puedes escribir tu consulta con otras palabras?"}, nil
	}

	// neither yes nor no: treat the reply as a brand-new question
	return s.resolveTurn(ctx, sess, message)
}

func (s *chatService) resumeFeedback(ctx context.Context, sess *entity.Session, message, normalized string) (*turnReply, error) {
	question := sess.FeedbackPending
	sess.FeedbackPending = ""

	if isAffirmative(normalized) {
		s.recordFeedback(ctx, sess.ID, question, true)
		return &turnReply{Text: "¡Me alegro de haber ayudado! ¿Necesitas algo más?"}, nil
	}

	if isNegative(normalized) {
		s.recordFeedback(ctx, sess.ID, question, false)
		return &turnReply{Text: "Lamento que la respuesta no haya sido útil. Registré tu comentario; ¿quieres que te derive con un funcionario municipal?"}, nil
	}

	return s.resolveTurn(ctx, sess, message)
}

func (s *chatService) recordFeedback(ctx context.Context, sessionID, question string, helpful bool) {
	repo, err := s.chatRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to open repository for feedback")
		return
	}

	feedback := entity.AnswerFeedback{
		ID:        uuid.NewString(),
		Question:  question,
		Helpful:   helpful,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}

	if err := repo.Curation.LogFeedback(ctx, feedback); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to log answer feedback")
	}
}

func (s *chatService) logUnansweredQuestion(ctx context.Context, sessionID, message string, result *nlp.MatchResult) {
	repo, err := s.chatRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to open repository for curation log")
		return
	}

	miss := entity.UnansweredQuestion{
		ID:            uuid.NewString(),
		Question:      message,
		BestScore:     result.BestScore,
		BestCandidate: result.BestVariant,
		SessionID:     sessionID,
		CreatedAt:     time.Now(),
	}

	if err := repo.Curation.LogUnansweredQuestion(ctx, miss); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to log unanswered question")
	}
}
