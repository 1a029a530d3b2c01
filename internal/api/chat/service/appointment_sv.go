package chatService

import (
	"MunBotGolang/internal/entity"
	"MunBotGolang/internal/fulfillment"
	"MunBotGolang/pkg/nlp"
	"MunBotGolang/pkg/rut"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	fieldMotivo = "motivo"
	fieldSlot   = "slot"

	maxOfferedSlots = 5
)

// startAppointment fetches available slots up front so the citizen is not
// walked through the whole form only to learn nothing is bookable.
func (s *chatService) startAppointment(ctx context.Context, sess *entity.Session) (*turnReply, error) {
	slots, err := s.scheduler.ListAvailable(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Error("Scheduler collaborator failed")
		sess.ActiveFlow = entity.FlowNone
		return &turnReply{
			Text: "No pude consultar las horas disponibles en este momento. Por favor intenta nuevamente en unos minutos.",
		}, nil
	}

	if len(slots) == 0 {
		sess.ActiveFlow = entity.FlowNone
		return &turnReply{
			Text: "Por ahora no hay horas de atención disponibles. Te sugiero volver a consultar mañana.",
		}, nil
	}

	if len(slots) > maxOfferedSlots {
		slots = slots[:maxOfferedSlots]
	}

	sess.ClearSubFlows()
	sess.ActiveFlow = entity.FlowAppointment
	sess.AppointmentDraft = &entity.AppointmentDraft{SlotOptions: slots}
	sess.PendingField = fieldNombre

	return &turnReply{
		Text: "Perfecto, agendemos una hora de atención. Primero, ¿cuál es tu nombre completo?",
	}, nil
}

func (s *chatService) advanceAppointment(ctx context.Context, sess *entity.Session, input string) (*turnReply, error) {
	draft := sess.AppointmentDraft
	if draft == nil {
		sess.ActiveFlow = entity.FlowNone
		sess.PendingField = ""
		return &turnReply{Text: msgReprompt}, nil
	}

	input = strings.TrimSpace(input)

	switch sess.PendingField {
	case fieldNombre:
		if len(strings.Fields(input)) < 2 {
			return &turnReply{Text: "Necesito tu nombre y apellido. ¿Cuál es tu nombre completo?"}, nil
		}
		draft.Nombre = input
		sess.PendingField = fieldRut
		return &turnReply{Text: "Gracias. Ahora indícame tu RUT (por ejemplo 12.345.678-5)."}, nil

	case fieldRut:
		formatted, err := rut.Format(input)
		if err != nil {
			return &turnReply{Text: "Ese RUT no es válido. Revisa el dígito verificador e inténtalo de nuevo (por ejemplo 12.345.678-5)."}, nil
		}
		draft.Rut = formatted
		sess.PendingField = fieldMotivo
		return &turnReply{Text: "¿Cuál es el motivo de tu visita?"}, nil

	case fieldMotivo:
		if len(input) < 5 {
			return &turnReply{Text: "Cuéntame un poco más sobre el motivo de tu visita."}, nil
		}
		draft.Motivo = input
		sess.PendingField = fieldSlot
		return &turnReply{Text: s.slotPrompt(draft)}, nil

	case fieldSlot:
		escape := len(draft.SlotOptions) + 1
		n, ok := parseMenuChoice(nlp.Normalize(input), escape)
		if !ok {
			return &turnReply{
				Text: fmt.Sprintf("Por favor responde con un número entre 1 y %d.", escape),
			}, nil
		}

		if n == escape {
			sess.ActiveFlow = entity.FlowNone
			sess.PendingField = ""
			sess.AppointmentDraft = nil
			return &turnReply{Text: "Entiendo, ninguna hora te acomoda. Puedes volver a consultar más tarde por nuevas horas disponibles."}, nil
		}

		draft.SlotID = draft.SlotOptions[n-1].ID
		sess.PendingField = fieldMail
		return &turnReply{Text: "Por último, ¿a qué correo electrónico te enviamos la confirmación?"}, nil

	case fieldMail:
		if err := validate.Var(input, "required,email"); err != nil {
			return &turnReply{Text: "Ese correo no parece válido. ¿Puedes escribirlo de nuevo?"}, nil
		}
		draft.Mail = input
		return s.bookAppointment(ctx, sess, draft)

	default:
		sess.ActiveFlow = entity.FlowNone
		sess.PendingField = ""
		return &turnReply{Text: msgReprompt}, nil
	}
}

func (s *chatService) slotPrompt(draft *entity.AppointmentDraft) string {
	var sb strings.Builder
	sb.WriteString("Estas son las horas disponibles:\n")
	for i, slot := range draft.SlotOptions {
		sb.WriteString(fmt.Sprintf("%d. %s de %s a %s\n", i+1, slot.Date, slot.StartTime, slot.EndTime))
	}
	sb.WriteString(fmt.Sprintf("%d. Ninguna me acomoda\n", len(draft.SlotOptions)+1))
	sb.WriteString("Responde con el número de la hora que prefieres.")
	return sb.String()
}

// bookAppointment reserves and then confirms the chosen slot. A remote
// failure keeps the flow alive so only the last field needs resending.
func (s *chatService) bookAppointment(ctx context.Context, sess *entity.Session, draft *entity.AppointmentDraft) (*turnReply, error) {
	reservation, err := s.scheduler.Reserve(ctx, draft.SlotID, fulfillment.ReserveRequest{
		Name:     draft.Nombre,
		IDNumber: draft.Rut,
		Email:    draft.Mail,
		Reason:   draft.Motivo,
	})
	if err == nil && reservation.Status == "pending" {
		reservation, err = s.scheduler.Confirm(ctx, reservation.ReservationID)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Error("Scheduler collaborator failed while booking")
		return &turnReply{
			Text: "No pude reservar la hora en este momento. Tus datos quedaron guardados; por favor vuelve a enviar tu correo en unos minutos para reintentar.",
		}, nil
	}

	var chosen entity.AppointmentSlot
	for _, slot := range draft.SlotOptions {
		if slot.ID == draft.SlotID {
			chosen = slot
			break
		}
	}

	s.notifyAppointment(draft, chosen, reservation.ReservationID)

	sess.ActiveFlow = entity.FlowNone
	sess.PendingField = ""
	sess.AppointmentDraft = nil
	sess.FallbackCount = 0

	return &turnReply{
		Text: fmt.Sprintf("¡Listo! Tu hora quedó confirmada para el %s a las %s (reserva **%s**). Te enviamos la confirmación a %s. ¿Necesitas algo más?",
			chosen.Date, chosen.StartTime, reservation.ReservationID, draft.Mail),
	}, nil
}

// notifyAppointment sends the citizen email and pings the on-duty staff
// WhatsApp, both best effort.
func (s *chatService) notifyAppointment(draft *entity.AppointmentDraft, slot entity.AppointmentSlot, reservationID string) {
	go func() {
		if err := s.mailer.SendAppointmentConfirmation(draft.Mail, draft.Nombre, slot.Date, slot.StartTime); err != nil {
			s.log.WithFields(logrus.Fields{
				"reservation_id": reservationID,
				"error":          err.Error(),
			}).Warn("Failed to send appointment confirmation email")
		}
	}()

	staffNumber := os.Getenv("STAFF_WHATSAPP_NUMBER")
	if s.notifier == nil || staffNumber == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		message := fmt.Sprintf("Nueva hora agendada: %s el %s a las %s (reserva %s).",
			draft.Nombre, slot.Date, slot.StartTime, reservationID)
		if err := s.notifier.SendMessage(ctx, staffNumber, message); err != nil {
			s.log.WithFields(logrus.Fields{
				"reservation_id": reservationID,
				"error":          err.Error(),
			}).Warn("Failed to send staff WhatsApp notification")
		}
	}()
}
