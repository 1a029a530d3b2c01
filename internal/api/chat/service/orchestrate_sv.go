package chatService

import (
	"MunBotGolang/internal/api/chat"
	"MunBotGolang/internal/entity"
	contextPkg "MunBotGolang/pkg/context"
	"MunBotGolang/pkg/nlp"
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	msgApology = "Lo siento, tuve un problema procesando tu mensaje. ¿Puedes intentarlo de nuevo?"
	msgReprompt = "No estoy seguro de haber entendido. ¿Puedes reformular tu consulta?"
	msgSoftOffer = "Sigo sin entender bien tu consulta. ¿Quieres intentarlo de nuevo o prefieres que te derive con un funcionario municipal?"
	msgEscalated = "Te voy a derivar con un funcionario municipal que podrá ayudarte directamente. Por favor espera un momento."
	msgFarewell  = "¡Hasta pronto! Recuerda que puedes escribirme cuando necesites ayuda con trámites municipales."
)

// ProcessMessage runs one engine turn: session lookup, short circuits, pending
// resumptions, the matcher pipeline and the final session write-back.
func (s *chatService) ProcessMessage(ctx context.Context, req chat.MessageRequest) (*chat.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, chat.ErrEmptyMessage
	}

	sess, err := s.loadSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	sess.AppendTurn("user", message)

	reply, err := s.resolveTurn(ctx, sess, message)
	if err != nil {
		// never leak a raw technical message; the session survives the fault
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Error("Turn resolution failed")
		reply = &turnReply{Text: msgApology}
	}

	if reply.EndSession {
		s.deleteSession(ctx, sess.ID)
	} else {
		sess.AppendTurn("assistant", reply.Text)
		if err := s.saveSession(ctx, sess); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sess.ID,
				"error":      err.Error(),
			}).Warn("Failed to persist session")
		}
	}

	answer := reply.Text
	if req.Channel == "plain" || req.Channel == "whatsapp" {
		answer = s.utils.StripEmphasis(answer)
	}

	return &chat.MessageResponse{
		AnswerText:   answer,
		SessionID:    sess.ID,
		PendingField: sess.PendingField,
		Escalated:    reply.Escalated,
		Processing:   reply.Processing,
	}, nil
}

func (s *chatService) resolveTurn(ctx context.Context, sess *entity.Session, message string) (*turnReply, error) {
	normalized := nlp.Normalize(message)

	if isCancellation(normalized) && sessionBusy(sess) {
		sess.ActiveFlow = entity.FlowNone
		sess.ComplaintDraft = nil
		sess.AppointmentDraft = nil
		sess.FeedbackPending = ""
		sess.ClearSubFlows()
		return &turnReply{Text: "De acuerdo, cancelé lo que estábamos haciendo. ¿En qué más puedo ayudarte?"}, nil
	}

	if isFarewell(normalized) {
		return &turnReply{Text: msgFarewell, EndSession: true}, nil
	}

	// pending sub-flows resume before anything else; at most one is active
	if sess.FeedbackPending != "" {
		return s.resumeFeedback(ctx, sess, message, normalized)
	}
	if len(sess.FAQChoices) > 0 {
		return s.resumeFAQChoice(sess, normalized)
	}
	if sess.FAQClarification != nil {
		return s.resumeFAQClarification(ctx, sess, message, normalized)
	}
	if sess.DocClarification != nil {
		return s.resumeDocClarification(ctx, sess, message, normalized)
	}
	if len(sess.PendingDocList) > 0 {
		return s.resumeDocList(sess, normalized)
	}
	if sess.ActiveFlow == entity.FlowComplaint && sess.PendingField != "" {
		return s.advanceComplaint(ctx, sess, message)
	}
	if sess.ActiveFlow == entity.FlowAppointment && sess.PendingField != "" {
		return s.advanceAppointment(ctx, sess, message)
	}

	if reply, handled := s.matchFAQ(ctx, sess, message); handled {
		return reply, nil
	}

	if reply, handled := s.resolveDocument(sess, message); handled {
		return reply, nil
	}

	classification := s.classifyIntent(ctx, message, sess.History)
	sess.LastSentiment = classification.Sentiment

	switch classification.Intent {
	case IntentComplaint:
		sess.FallbackCount = 0
		return s.startComplaint(sess), nil
	case IntentAppointment:
		sess.FallbackCount = 0
		return s.startAppointment(ctx, sess)
	case IntentDocSearch:
		sess.FallbackCount = 0
		return s.dispatchDocSearch(ctx, sess, message)
	}

	switch s.applyEscalation(sess, classification.Confidence, classification.Sentiment) {
	case escalationProceed:
		return s.generateFreeFormAnswer(ctx, sess, message)
	case escalationHard:
		return &turnReply{Text: msgEscalated, Escalated: true}, nil
	case escalationSoftOffer:
		return &turnReply{Text: msgSoftOffer}, nil
	default:
		return &turnReply{Text: msgReprompt}, nil
	}
}

// dispatchDocSearch forces the document path and falls back to the remote
// document collaborator when the local cache cannot resolve the question.
func (s *chatService) dispatchDocSearch(ctx context.Context, sess *entity.Session, message string) (*turnReply, error) {
	if reply, handled := s.resolveDocument(sess, message); handled {
		return reply, nil
	}

	answer, err := s.docsRemote.GenerateAnswer(ctx, message)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Warn("Document collaborator unavailable")
		return &turnReply{Text: "No pude consultar la información de documentos en este momento. Por favor intenta nuevamente en unos minutos."}, nil
	}

	return &turnReply{Text: answer}, nil
}

// generateFreeFormAnswer asks the generator for prose grounded in the
// knowledge base; the remote document collaborator is the backup generator.
func (s *chatService) generateFreeFormAnswer(ctx context.Context, sess *entity.Session, message string) (*turnReply, error) {
	prompt := s.buildGenerationPrompt(sess, message)

	answer, err := s.generator.GenerateAnswer(ctx, prompt, 256, 0.4)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Warn("Generator unavailable, trying document collaborator")

		answer, err = s.docsRemote.GenerateAnswer(ctx, message)
		if err != nil {
			sess.FallbackCount++
			return &turnReply{Text: msgReprompt}, nil
		}
	}

	return &turnReply{Text: answer}, nil
}

func (s *chatService) buildGenerationPrompt(sess *entity.Session, message string) string {
	var sb strings.Builder
	sb.WriteString("Eres el asistente virtual de una municipalidad chilena. Responde en español, en tono cercano y breve (máximo 3 frases). Si no sabes la respuesta, dilo y sugiere contactar a la municipalidad.\n\n")

	if len(sess.History) > 1 {
		sb.WriteString("Conversación reciente:\n")
		for _, turn := range sess.History {
			sb.WriteString(turn.Speaker + ": " + turn.Text + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Pregunta del vecino: " + message)
	return sb.String()
}

func sessionBusy(sess *entity.Session) bool {
	// sessions decoded from older payloads may carry a zero-valued flow
	flowActive := sess.ActiveFlow != entity.FlowNone && sess.ActiveFlow != ""
	return flowActive ||
		sess.PendingField != "" ||
		sess.FAQClarification != nil ||
		len(sess.FAQChoices) > 0 ||
		sess.DocClarification != nil ||
		len(sess.PendingDocList) > 0 ||
		sess.FeedbackPending != ""
}

// isCancellation recognizes short turns built around an abort keyword. The
// keywords never count inside longer free text, so a slot answer that happens
// to mention them keeps the flow alive.
func isCancellation(normalized string) bool {
	for _, kw := range []string{"cancelar", "cancela", "olvidalo", "dejalo", "salir", "no quiero seguir"} {
		if normalized == kw || strings.HasPrefix(normalized, kw+" ") {
			return true
		}
	}

	words := strings.Fields(normalized)
	if len(words) > 4 {
		return false
	}
	for _, w := range words {
		switch w {
		case "cancelar", "cancela", "olvidalo", "dejalo":
			return true
		}
	}
	return false
}

func isFarewell(normalized string) bool {
	for _, kw := range []string{"adios", "chao", "hasta luego", "nos vemos", "me voy", "hasta pronto"} {
		if normalized == kw || strings.HasPrefix(normalized, kw+" ") {
			return true
		}
	}
	return false
}

func isAffirmative(normalized string) bool {
	for _, kw := range []string{"si", "sip", "claro", "ok", "bueno", "por supuesto", "dale", "ya", "afirmativo", "correcto", "exacto"} {
		if normalized == kw || strings.HasPrefix(normalized, kw+" ") {
			return true
		}
	}
	return false
}

func isNegative(normalized string) bool {
	for _, kw := range []string{"no", "nop", "negativo", "para nada", "tampoco"} {
		if normalized == kw || strings.HasPrefix(normalized, kw+" ") {
			return true
		}
	}
	return false
}

func parseMenuChoice(normalized string, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(normalized))
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}
